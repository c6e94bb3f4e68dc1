package models

// AdviceHTTPRequest is the POST /api/advice body.
type AdviceHTTPRequest struct {
	SessionID string `json:"session_id" validate:"required,min=1,max=128"`
	Portfolio string `json:"portfolio" validate:"required,min=1,max=4000"`
	Horizon   string `json:"horizon" validate:"required,oneof=lt1y 1y3y 3y5y 5yplus 10yplus"`
	Question  string `json:"question" validate:"required,min=1,max=2000"`
	Ticker    string `json:"ticker,omitempty" validate:"omitempty,max=12"`
}

// AdviceHTTPResponse mirrors AdviceResult for the wire plus the snapshot the
// request was enriched with, if any.
type AdviceHTTPResponse struct {
	Status      string              `json:"status"`
	Advice      string              `json:"advice,omitempty"`
	WaitSeconds int                 `json:"wait_seconds,omitempty"`
	Message     string              `json:"message,omitempty"`
	Snapshot    *MarketSnapshotHTTP `json:"snapshot,omitempty"`
	Usage       *SessionUsage       `json:"usage,omitempty"`
}

// MarketSnapshotHTTP is the wire form of MarketSnapshot. WeekChangePct is a
// pointer so an undefined change serializes as absent instead of NaN.
type MarketSnapshotHTTP struct {
	Ticker        string   `json:"ticker"`
	CompanyName   string   `json:"company_name"`
	CurrentPrice  float64  `json:"current_price"`
	WeekChangePct *float64 `json:"week_change_percent,omitempty"`
	WeekHigh      float64  `json:"week_high"`
	WeekLow       float64  `json:"week_low"`
	Sector        string   `json:"sector"`
}

// SnapshotHTTP converts a snapshot to its wire form.
func SnapshotHTTP(s *MarketSnapshot) *MarketSnapshotHTTP {
	if s == nil {
		return nil
	}
	out := &MarketSnapshotHTTP{
		Ticker:       s.Ticker,
		CompanyName:  s.CompanyName,
		CurrentPrice: s.CurrentPrice,
		WeekHigh:     s.WeekHigh,
		WeekLow:      s.WeekLow,
		Sector:       s.Sector,
	}
	if s.ChangeDefined() {
		pct := s.WeekChangePct
		out.WeekChangePct = &pct
	}
	return out
}
