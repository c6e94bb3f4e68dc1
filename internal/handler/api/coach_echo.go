package api

import (
	"context"
	"errors"

	"CalmTrader/internal/domain/models"
	"CalmTrader/internal/service/marketdata"
	xhttp "CalmTrader/pkg/http"
	xlogger "CalmTrader/pkg/logger"
	"CalmTrader/pkg/util"
	"CalmTrader/web"

	"github.com/labstack/echo/v4"
)

// AdviceCoach runs a gated advice interaction.
type AdviceCoach interface {
	RequestAdvice(ctx context.Context, sessionID string, req models.AdviceRequest) models.AdviceResult
}

// MarketFetcher retrieves a ticker snapshot.
type MarketFetcher interface {
	Fetch(ctx context.Context, ticker string) (*models.MarketSnapshot, error)
	FetchWindow(ctx context.Context, ticker string, days int) (*models.MarketSnapshot, error)
}

// UsageReader exposes a session's guard state.
type UsageReader interface {
	Usage(ctx context.Context, id string) (models.SessionUsage, error)
}

// CoachHandler implements the Echo routes for the advice UI.
type CoachHandler struct {
	logger *xlogger.Logger
	coach  AdviceCoach
	market MarketFetcher
	usage  UsageReader
}

func NewCoachHandler(logger *xlogger.Logger, coach AdviceCoach, market MarketFetcher, usage UsageReader) *CoachHandler {
	return &CoachHandler{logger: logger, coach: coach, market: market, usage: usage}
}

func (h *CoachHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/advice", h.Advice)
	g.GET("/market/:ticker", h.Market)
	g.GET("/session/:id", h.Session)

	// Embedded single-page UI.
	e.FileFS("/", "static/index.html", web.Static)
	e.StaticFS("/static", echo.MustSubFS(web.Static, "static"))
}

// Advice handles POST /api/advice. A ticker, when present, enriches the
// prompt with a market block; a failed lookup silently drops the block.
func (h *CoachHandler) Advice(c echo.Context) error {
	req := &models.AdviceHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()

	var snap *models.MarketSnapshot
	if req.Ticker != "" {
		s, err := h.market.Fetch(ctx, req.Ticker)
		if err == nil {
			snap = s
		} else if !errors.Is(err, marketdata.ErrNoData) {
			h.logger.Error("advice market lookup error", xlogger.Error(err))
		}
	}

	question := req.Question
	res := h.coach.RequestAdvice(ctx, req.SessionID, models.AdviceRequest{
		Portfolio: req.Portfolio,
		Horizon:   models.Horizon(req.Horizon),
		Question:  question,
		Snapshot:  snap,
	})

	body := &models.AdviceHTTPResponse{
		Status:      string(res.Status),
		Advice:      res.Text,
		WaitSeconds: res.WaitSeconds,
		Message:     res.Message,
		Snapshot:    models.SnapshotHTTP(snap),
	}
	if u, err := h.usage.Usage(ctx, req.SessionID); err == nil {
		body.Usage = &u
	}

	switch res.Status {
	case models.AdviceGranted:
		return xhttp.SuccessResponse(c, body)
	case models.AdviceQuotaExceeded:
		body.Message = "You've used your free questions for this session."
		return xhttp.TooManyRequestsResponse(c, body)
	case models.AdviceCooldown:
		return xhttp.TooManyRequestsResponse(c, body)
	case models.AdviceMisconfigured:
		body.Message = "Advice service is not configured."
		return xhttp.ServiceUnavailableResponse(c, body)
	default:
		return xhttp.BadGatewayResponse(c, body)
	}
}

// Market handles GET /api/market/:ticker. An optional days query widens or
// narrows the display window within sane bounds.
func (h *CoachHandler) Market(c echo.Context) error {
	ticker := c.Param("ticker")
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}

	days := xhttp.ParseIntDefault(c.QueryParam("days"), 0)

	var (
		snap *models.MarketSnapshot
		err  error
	)
	if days > 0 {
		snap, err = h.market.FetchWindow(c.Request().Context(), ticker, util.ClampInt(days, 2, 30))
	} else {
		snap, err = h.market.Fetch(c.Request().Context(), ticker)
	}
	if err != nil {
		if errors.Is(err, marketdata.ErrNoData) {
			return xhttp.NotFoundResponse(c, "no data for ticker")
		}
		h.logger.Error("market lookup error", xlogger.Error(err))
		return xhttp.NotFoundResponse(c, "no data for ticker")
	}

	return xhttp.SuccessResponse(c, models.SnapshotHTTP(snap))
}

// Session handles GET /api/session/:id.
func (h *CoachHandler) Session(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.BadRequestResponse(c, "session id required")
	}

	u, err := h.usage.Usage(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("session usage error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return xhttp.SuccessResponse(c, u)
}
