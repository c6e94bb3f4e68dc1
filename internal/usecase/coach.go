package usecase

import (
	"context"
	"errors"

	"CalmTrader/internal/domain/models"
	"CalmTrader/internal/service/session"
	applogger "CalmTrader/pkg/logger"
	"CalmTrader/pkg/metrics"
)

// Advisor is the completion-service client the coach calls. Configured must
// be cheap and side-effect free; Ask performs exactly one upstream request.
type Advisor interface {
	Configured() bool
	Ask(ctx context.Context, prompt string) (string, error)
}

// Coach runs one advice interaction: guard checks, prompt build, completion
// call, usage record. Checks run strictly in order — quota, cooldown,
// credential — and all of them before any outbound request.
type Coach struct {
	sessions *session.Registry
	advisor  Advisor
	l        *applogger.Logger
	m        *metrics.Recorder
}

// NewCoach creates the advice use case.
func NewCoach(sessions *session.Registry, advisor Advisor) *Coach {
	return &Coach{sessions: sessions, advisor: advisor}
}

// SetLogger injects a structured logger.
func (c *Coach) SetLogger(l *applogger.Logger) { c.l = l }

// SetMetrics injects a metrics recorder.
func (c *Coach) SetMetrics(m *metrics.Recorder) { c.m = m }

// RequestAdvice gates req through the session guard and, when granted,
// returns the model's response. Usage is recorded only after the upstream
// call returns successfully: a failed completion does not consume quota.
func (c *Coach) RequestAdvice(ctx context.Context, sessionID string, req models.AdviceRequest) models.AdviceResult {
	if err := c.sessions.Lock(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrBusy) {
			// A second tab raced us; tell it to retry shortly.
			return c.done(models.CooldownActive(1))
		}
		c.warn("session lock failed", sessionID, err)
		return c.done(models.UpstreamError("session store unavailable"))
	}
	defer c.sessions.Unlock(ctx, sessionID)

	if err := c.sessions.Check(ctx, sessionID); err != nil {
		var cooldown *session.CooldownError
		switch {
		case errors.Is(err, session.ErrQuotaExceeded):
			return c.done(models.QuotaExceeded())
		case errors.As(err, &cooldown):
			return c.done(models.CooldownActive(cooldown.WaitSeconds))
		default:
			c.warn("session check failed", sessionID, err)
			return c.done(models.UpstreamError("session store unavailable"))
		}
	}

	if !c.advisor.Configured() {
		return c.done(models.Misconfigured())
	}

	prompt := BuildPrompt(req.Portfolio, req.Horizon, req.Question, req.Snapshot)

	text, err := c.advisor.Ask(ctx, prompt)
	if err != nil {
		c.warn("completion call failed", sessionID, err)
		return c.done(models.UpstreamError(err.Error()))
	}

	if err := c.sessions.RecordGranted(ctx, sessionID); err != nil {
		// The user already got their answer; losing the counter update is
		// the lesser failure. Log it and return the advice.
		c.warn("usage record failed", sessionID, err)
	}

	return c.done(models.Granted(text))
}

func (c *Coach) done(res models.AdviceResult) models.AdviceResult {
	if c.m != nil {
		c.m.RecordAdvice(string(res.Status))
	}
	return res
}

func (c *Coach) warn(msg, sessionID string, err error) {
	if c.l == nil {
		return
	}
	c.l.Warn("coach: "+msg,
		applogger.String("session", sessionID),
		applogger.Error(err),
	)
}
