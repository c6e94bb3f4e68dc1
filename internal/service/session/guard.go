package session

import (
	"math"
	"time"
)

// UsageState tracks one session's advice usage. The zero value is a fresh
// session: no questions asked, cooldown immediately satisfied.
type UsageState struct {
	Questions    int       `json:"questions"`
	LastQuestion time.Time `json:"last_question"`
}

// Limits are the per-session guard constants: the question quota and the
// minimum pause between two granted calls.
type Limits struct {
	Quota    int
	Cooldown time.Duration
}

// HasQuotaRemaining reports whether another question fits the quota.
func (l Limits) HasQuotaRemaining(s UsageState) bool {
	return s.Questions < l.Quota
}

// CooldownStatus reports whether the cooldown has elapsed and, when it has
// not, the whole seconds left to wait (rounded up).
func (l Limits) CooldownStatus(s UsageState, now time.Time) (bool, int) {
	elapsed := now.Sub(s.LastQuestion)
	if elapsed >= l.Cooldown {
		return true, 0
	}
	wait := int(math.Ceil((l.Cooldown - elapsed).Seconds()))
	if wait < 0 {
		wait = 0
	}
	return false, wait
}

// Record marks one granted call. It must run exactly once per granted call
// and never on a rejected one.
func (s *UsageState) Record(now time.Time) {
	s.Questions++
	s.LastQuestion = now
}
