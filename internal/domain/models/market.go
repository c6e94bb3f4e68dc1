package models

import "math"

// MarketSnapshot is the reduced market-data record attached to an advice
// request for context. It is built fresh per fetch and never persisted.
type MarketSnapshot struct {
	Ticker        string
	CompanyName   string
	CurrentPrice  float64
	WeekChangePct float64 // NaN when the week-ago close is zero
	WeekHigh      float64
	WeekLow       float64
	Sector        string
}

// ChangeDefined reports whether the week change percent is a real number.
// A week-ago close of zero makes the percent change undefined.
func (s *MarketSnapshot) ChangeDefined() bool {
	return !math.IsNaN(s.WeekChangePct)
}
