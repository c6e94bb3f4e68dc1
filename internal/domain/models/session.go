package models

// SessionUsage is the read-only view of a session's guard state returned to
// the UI so it can render remaining questions and cooldown.
type SessionUsage struct {
	SessionID          string `json:"session_id"`
	QuestionsUsed      int    `json:"questions_used"`
	QuestionsRemaining int    `json:"questions_remaining"`
	CooldownSeconds    int    `json:"cooldown_seconds"`
}
