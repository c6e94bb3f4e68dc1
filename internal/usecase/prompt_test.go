package usecase

import (
	"math"
	"strings"
	"testing"

	"CalmTrader/internal/domain/models"
)

func TestBuildPromptWithoutSnapshot(t *testing.T) {
	got := BuildPrompt("10 shares of NVDA for AI growth", models.HorizonFivePlus, "Should I panic?", nil)

	want := "User's Portfolio Context: Portfolio: 10 shares of NVDA for AI growth\n" +
		"Time Horizon: 5+ years\n\n" +
		"User's Question: Should I panic?\n\n"
	if got != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildPromptWithSnapshot(t *testing.T) {
	snap := &models.MarketSnapshot{
		Ticker:        "NVDA",
		CompanyName:   "NVIDIA Corporation",
		CurrentPrice:  110,
		WeekChangePct: 10,
		WeekHigh:      112.5,
		WeekLow:       99.25,
		Sector:        "Technology",
	}

	got := BuildPrompt("NVDA and AAPL", models.HorizonOneToThree, "Worried about the dip.", snap)

	for _, want := range []string{
		"Current Market Data:\n",
		"- NVIDIA Corporation (NVDA)\n",
		"- Current Price: $110.00\n",
		"- Week Change: +10.00%\n",
		"- Week Range: $99.25 - $112.50\n",
		"- Sector: Technology\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPromptNegativeChange(t *testing.T) {
	snap := &models.MarketSnapshot{
		Ticker:        "XYZ",
		CompanyName:   "XYZ Corp",
		CurrentPrice:  45,
		WeekChangePct: -10,
	}

	got := BuildPrompt("p", models.HorizonUnderOneYear, "q", snap)
	if !strings.Contains(got, "- Week Change: -10.00%\n") {
		t.Fatalf("expected signed negative change, got:\n%s", got)
	}
}

func TestBuildPromptUndefinedChange(t *testing.T) {
	snap := &models.MarketSnapshot{
		Ticker:        "XYZ",
		CompanyName:   "XYZ Corp",
		WeekChangePct: math.NaN(),
	}

	got := BuildPrompt("p", models.HorizonTenPlus, "q", snap)
	if !strings.Contains(got, "- Week Change: n/a\n") {
		t.Fatalf("expected n/a for undefined change, got:\n%s", got)
	}
	if strings.Contains(got, "NaN") {
		t.Fatalf("NaN leaked into prompt:\n%s", got)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	snap := &models.MarketSnapshot{Ticker: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 190.3}
	a := BuildPrompt("p", models.HorizonThreeToFive, "q", snap)
	b := BuildPrompt("p", models.HorizonThreeToFive, "q", snap)
	if a != b {
		t.Fatalf("prompt not deterministic:\n%q\nvs\n%q", a, b)
	}
}
