package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"CalmTrader/internal/domain/models"
	"CalmTrader/internal/service/marketdata"
	xlogger "CalmTrader/pkg/logger"
)

type fakeCoach struct {
	result  models.AdviceResult
	lastReq models.AdviceRequest
	calls   int
}

func (f *fakeCoach) RequestAdvice(_ context.Context, _ string, req models.AdviceRequest) models.AdviceResult {
	f.calls++
	f.lastReq = req
	return f.result
}

type fakeMarket struct {
	snap     *models.MarketSnapshot
	err      error
	lastDays int
}

func (f *fakeMarket) Fetch(_ context.Context, _ string) (*models.MarketSnapshot, error) {
	return f.snap, f.err
}

func (f *fakeMarket) FetchWindow(_ context.Context, _ string, days int) (*models.MarketSnapshot, error) {
	f.lastDays = days
	return f.snap, f.err
}

type fakeUsage struct {
	usage models.SessionUsage
	err   error
}

func (f *fakeUsage) Usage(_ context.Context, _ string) (models.SessionUsage, error) {
	return f.usage, f.err
}

func newTestHandler(t *testing.T, coach *fakeCoach, market *fakeMarket, usage *fakeUsage) (*echo.Echo, *CoachHandler) {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewCoachHandler(l, coach, market, usage)
	e := echo.New()
	h.RegisterRoutes(e)
	return e, h
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) (int, map[string]any) {
	t.Helper()
	var out struct {
		Status int `json:"status"`
		Data   any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	data, _ := out.Data.(map[string]any)
	return out.Status, data
}

func TestAdviceGranted(t *testing.T) {
	coach := &fakeCoach{result: models.Granted("Keep calm and stay invested.")}
	market := &fakeMarket{snap: &models.MarketSnapshot{Ticker: "NVDA", CompanyName: "NVIDIA Corporation", CurrentPrice: 110}}
	usage := &fakeUsage{usage: models.SessionUsage{QuestionsUsed: 1, QuestionsRemaining: 2}}
	e, _ := newTestHandler(t, coach, market, usage)

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "20 shares of NVDA",
		"horizon": "5yplus",
		"question": "Should I panic?",
		"ticker": "NVDA"
	}`)

	status, data := envelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("expected envelope status 200, got %d", status)
	}
	if data["status"] != "granted" {
		t.Fatalf("expected granted, got %v", data["status"])
	}
	if data["advice"] != "Keep calm and stay invested." {
		t.Fatalf("unexpected advice %v", data["advice"])
	}
	if data["snapshot"] == nil {
		t.Fatalf("expected snapshot in response")
	}
	if coach.lastReq.Snapshot == nil || coach.lastReq.Snapshot.Ticker != "NVDA" {
		t.Fatalf("coach did not receive snapshot: %+v", coach.lastReq.Snapshot)
	}
}

func TestAdviceTickerLookupFailureIsSoft(t *testing.T) {
	coach := &fakeCoach{result: models.Granted("ok")}
	market := &fakeMarket{err: marketdata.ErrNoData}
	e, _ := newTestHandler(t, coach, market, &fakeUsage{})

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "p",
		"horizon": "1y3y",
		"question": "q",
		"ticker": "NOPE"
	}`)

	status, data := envelope(t, rec)
	if status != http.StatusOK || data["status"] != "granted" {
		t.Fatalf("lookup failure must not block advice: status=%d data=%v", status, data)
	}
	if coach.lastReq.Snapshot != nil {
		t.Fatalf("expected no snapshot passed to coach")
	}
}

func TestAdviceQuotaExceededStatus(t *testing.T) {
	coach := &fakeCoach{result: models.QuotaExceeded()}
	e, _ := newTestHandler(t, coach, &fakeMarket{}, &fakeUsage{})

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "p",
		"horizon": "1y3y",
		"question": "q"
	}`)

	status, data := envelope(t, rec)
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected envelope status 429, got %d", status)
	}
	if data["status"] != "quota_exceeded" {
		t.Fatalf("unexpected status %v", data["status"])
	}
}

func TestAdviceCooldownStatus(t *testing.T) {
	coach := &fakeCoach{result: models.CooldownActive(6)}
	e, _ := newTestHandler(t, coach, &fakeMarket{}, &fakeUsage{})

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "p",
		"horizon": "1y3y",
		"question": "q"
	}`)

	status, data := envelope(t, rec)
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected envelope status 429, got %d", status)
	}
	if data["wait_seconds"] != float64(6) {
		t.Fatalf("unexpected wait %v", data["wait_seconds"])
	}
}

func TestAdviceMisconfiguredStatus(t *testing.T) {
	coach := &fakeCoach{result: models.Misconfigured()}
	e, _ := newTestHandler(t, coach, &fakeMarket{}, &fakeUsage{})

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "p",
		"horizon": "1y3y",
		"question": "q"
	}`)

	status, data := envelope(t, rec)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected envelope status 503, got %d", status)
	}
	if data["status"] != "misconfigured" {
		t.Fatalf("unexpected status %v", data["status"])
	}
}

func TestAdviceValidation(t *testing.T) {
	coach := &fakeCoach{result: models.Granted("ok")}
	e, _ := newTestHandler(t, coach, &fakeMarket{}, &fakeUsage{})

	rec := doJSON(e, http.MethodPost, "/api/advice", `{
		"session_id": "s1",
		"portfolio": "p",
		"horizon": "someday",
		"question": "q"
	}`)

	status, _ := envelope(t, rec)
	if status != http.StatusBadRequest {
		t.Fatalf("expected envelope status 400, got %d", status)
	}
	if coach.calls != 0 {
		t.Fatalf("invalid request reached the coach")
	}
}

func TestMarketEndpoint(t *testing.T) {
	market := &fakeMarket{snap: &models.MarketSnapshot{Ticker: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 210}}
	e, _ := newTestHandler(t, &fakeCoach{}, market, &fakeUsage{})

	rec := doJSON(e, http.MethodGet, "/api/market/AAPL", "")
	status, data := envelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if data["ticker"] != "AAPL" {
		t.Fatalf("unexpected ticker %v", data["ticker"])
	}
}

func TestMarketEndpointClampsDays(t *testing.T) {
	market := &fakeMarket{snap: &models.MarketSnapshot{Ticker: "AAPL"}}
	e, _ := newTestHandler(t, &fakeCoach{}, market, &fakeUsage{})

	doJSON(e, http.MethodGet, "/api/market/AAPL?days=500", "")
	if market.lastDays != 30 {
		t.Fatalf("expected days clamped to 30, got %d", market.lastDays)
	}
}

func TestMarketEndpointNotFound(t *testing.T) {
	market := &fakeMarket{err: marketdata.ErrNoData}
	e, _ := newTestHandler(t, &fakeCoach{}, market, &fakeUsage{})

	rec := doJSON(e, http.MethodGet, "/api/market/NOPE", "")
	status, _ := envelope(t, rec)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSessionEndpoint(t *testing.T) {
	usage := &fakeUsage{usage: models.SessionUsage{QuestionsUsed: 2, QuestionsRemaining: 1, CooldownSeconds: 4}}
	e, _ := newTestHandler(t, &fakeCoach{}, &fakeMarket{}, usage)

	rec := doJSON(e, http.MethodGet, "/api/session/s1", "")
	status, data := envelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if data["questions_used"] != float64(2) || data["questions_remaining"] != float64(1) {
		t.Fatalf("unexpected usage payload %v", data)
	}
}
