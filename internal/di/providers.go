package di

import (
	"fmt"

	"CalmTrader/internal/handler/api"
	"CalmTrader/internal/service/advisor"
	"CalmTrader/internal/service/marketdata"
	"CalmTrader/internal/service/session"
	"CalmTrader/internal/usecase"
	"CalmTrader/pkg/cache"
	"CalmTrader/pkg/config"
	xhttp "CalmTrader/pkg/http"
	applogger "CalmTrader/pkg/logger"
	"CalmTrader/pkg/metrics"
	"CalmTrader/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	l, err := applogger.New(lcfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideSessionStore creates the session state store (memory or Redis).
func ProvideSessionStore(cfg *config.Config) (cache.Service, error) {
	switch cfg.Session.Store {
	case "redis":
		store, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Session.Redis.Addr),
			cache.WithRedisPassword(cfg.Session.Redis.Password),
			cache.WithRedisDB(cfg.Session.Redis.DB),
			cache.WithRedisPrefix("calmtrader"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// ProvideSessionRegistry creates the per-session usage registry.
func ProvideSessionRegistry(cfg *config.Config, store cache.Service) *session.Registry {
	limits := session.Limits{
		Quota:    cfg.Advice.Quota,
		Cooldown: cfg.Advice.Cooldown,
	}
	return session.NewRegistry(store, limits, cfg.Session.TTL)
}

// ProvideMarketClient creates the market data client.
func ProvideMarketClient(cfg *config.Config, l *applogger.Logger, m *metrics.Recorder) *marketdata.Client {
	client := marketdata.New(cfg.Market.BaseURL, cfg.Market.LookbackDays, cfg.Market.Timeout)
	client.SetLogger(l)
	client.SetMetrics(m)
	return client
}

// ProvideAdvisor creates the Gemini completion client.
func ProvideAdvisor(cfg *config.Config) *advisor.Client {
	return advisor.New(cfg.Advice.APIKey, cfg.Advice.Model, cfg.Advice.MaxOutputTokens)
}

// ProvideCoach creates the advice use case.
func ProvideCoach(sessions *session.Registry, adv *advisor.Client, l *applogger.Logger, m *metrics.Recorder) *usecase.Coach {
	coach := usecase.NewCoach(sessions, adv)
	coach.SetLogger(l)
	coach.SetMetrics(m)
	return coach
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(l *applogger.Logger, coach *usecase.Coach, market *marketdata.Client, sessions *session.Registry) xhttp.Handler {
	return api.NewCoachHandler(l, coach, market, sessions)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, store cache.Service) *server.App {
	return server.New(cfg, l, handler, store)
}
