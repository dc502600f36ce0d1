package server

import (
	"net/http"

	"webshop-backend/internal/client"
	"webshop-backend/internal/config"
	"webshop-backend/internal/handler"
	custommw "webshop-backend/internal/middleware"
	"webshop-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo          *echo.Echo
	orderHandler  *handler.OrderHandler
	stripeHandler *handler.StripeHandler
	cronHandler   *handler.CronHandler
	cronSecret    string
}

func NewServer(
	orderService service.OrderService,
	callRequestService service.CallRequestService,
	settlementService service.SettlementService,
	sweepService service.SweepService,
	verifier client.WebhookVerifier,
	cronCfg *config.Cron,
	log *zap.SugaredLogger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infow("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:          e,
		orderHandler:  handler.NewOrderHandler(orderService, callRequestService),
		stripeHandler: handler.NewStripeHandler(verifier, settlementService, log),
		cronHandler:   handler.NewCronHandler(sweepService),
		cronSecret:    cronCfg.Secret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.POST("/call-requests/create", s.orderHandler.CreateCallRequest)
	api.POST("/orders/create", s.orderHandler.CreateOrder)
	api.POST("/checkout/create", s.orderHandler.CreateCheckout)

	// -------- stripe webhook --------
	api.POST("/stripe/webhook", s.stripeHandler.Webhook)

	// -------- scheduled jobs --------
	cron := api.Group("/cron", custommw.CronAuth(s.cronSecret))
	cron.GET("/abandoned-orders", s.cronHandler.AbandonedOrders)
	cron.POST("/abandoned-orders", s.cronHandler.AbandonedOrders)
}

// Echo exposes the router for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
