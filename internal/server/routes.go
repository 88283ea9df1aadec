package server

import (
	"net/http"
	"time"

	"energyhud/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type metricsResponse struct {
	Connected bool                   `json:"connected"`
	Metrics   *domain.DerivedMetrics `json:"metrics"`
}

type tariffRequest struct {
	Rate float64 `json:"rate"`
}

type tariffResponse struct {
	Rate float64 `json:"rate"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/api/metrics", s.MetricsHandler)
	e.GET("/api/history", s.HistoryHandler)
	e.PUT("/api/tariff", s.TariffHandler)
	e.GET("/ws", s.WebsocketHandler)
	e.GET("/", s.DashboardHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) MetricsHandler(c echo.Context) error {
	resp, err := s.requestMetrics()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.JSON(http.StatusOK, metricsResponse{
		Connected: resp.Connected,
		Metrics:   resp.Metrics,
	})
}

func (s *Server) HistoryHandler(c echo.Context) error {
	resp, err := s.requestMetrics()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	history := resp.History
	if history == nil {
		history = []domain.PowerSample{}
	}
	return c.JSON(http.StatusOK, history)
}

func (s *Server) TariffHandler(c echo.Context) error {
	var req tariffRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.Rate <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rate must be > 0"})
	}
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.SetTariffRateRequest{Rate: req.Rate}, 10*time.Second).Result()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	response, ok := res.(domain.SetTariffRateResponse)
	if !ok || response.HasResponseError() {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.JSON(http.StatusOK, tariffResponse{Rate: response.Rate})
}

func (s *Server) DashboardHandler(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardHTML)
}

func (s *Server) requestMetrics() (*domain.GetMetricsResponse, error) {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetMetricsRequest{}, 10*time.Second).Result()
	if err != nil {
		return nil, err
	}
	response, ok := res.(domain.GetMetricsResponse)
	if !ok {
		return nil, echo.ErrServiceUnavailable
	}
	if response.HasResponseError() {
		return nil, response.GetResponseError()
	}
	return &response, nil
}
