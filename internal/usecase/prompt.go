package usecase

import (
	"fmt"
	"strings"

	"CalmTrader/internal/domain/models"
)

// BuildPrompt composes the completion request body. It is pure and
// deterministic: identical inputs yield byte-identical output. The market
// block is appended only when a snapshot is present.
func BuildPrompt(portfolio string, horizon models.Horizon, question string, snap *models.MarketSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User's Portfolio Context: Portfolio: %s\nTime Horizon: %s\n\n", portfolio, horizon.Label())
	fmt.Fprintf(&b, "User's Question: %s\n\n", question)

	if snap != nil {
		b.WriteString("Current Market Data:\n")
		fmt.Fprintf(&b, "- %s (%s)\n", snap.CompanyName, snap.Ticker)
		fmt.Fprintf(&b, "- Current Price: $%.2f\n", snap.CurrentPrice)
		if snap.ChangeDefined() {
			fmt.Fprintf(&b, "- Week Change: %+.2f%%\n", snap.WeekChangePct)
		} else {
			b.WriteString("- Week Change: n/a\n")
		}
		fmt.Fprintf(&b, "- Week Range: $%.2f - $%.2f\n", snap.WeekLow, snap.WeekHigh)
		fmt.Fprintf(&b, "- Sector: %s\n", snap.Sector)
	}

	return b.String()
}

// TickerCheckQuestion is the canned question the stock-check flow asks when
// the user inspects a ticker without typing their own question.
func TickerCheckQuestion(ticker string) string {
	return fmt.Sprintf("What should I know about %s's recent performance? Should I be concerned?", ticker)
}
