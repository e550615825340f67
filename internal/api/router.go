package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Share-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
)

// Services are the dependencies the HTTP handlers are built from.
type Services struct {
	System      *service.SystemService
	Portfolio   *service.PortfolioService
	Position    *service.PositionService
	Price       *service.PriceService
	Report      *service.ReportService
	Share       *service.ShareService
	Preferences *service.PreferencesService
	Renderer    *render.Renderer
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *logging.Logger) http.Handler {
	response.SetLogger(logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.CORS(cfg.CORS))

	reportHandler := handlers.NewReportHandler(svc.Report, svc.Renderer)
	shareHandler := handlers.NewShareHandler(svc.Share, reportHandler, cfg.Server.PublicBaseURL)

	r.Route("/system", func(r chi.Router) {
		systemHandler := handlers.NewSystemHandler(svc.System)
		r.Get("/health", systemHandler.Health)
	})

	r.Route("/portfolios", func(r chi.Router) {
		portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
		r.Get("/", portfolioHandler.Portfolios)
		r.Post("/", portfolioHandler.CreatePortfolio)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Delete("/", portfolioHandler.DeletePortfolio)
			r.Get("/metrics", portfolioHandler.PortfolioMetrics)
		})
	})

	r.Route("/positions", func(r chi.Router) {
		positionHandler := handlers.NewPositionHandler(svc.Position)
		r.Get("/", positionHandler.Positions)
		r.Post("/", positionHandler.CreatePosition)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", positionHandler.UpdatePosition)
			r.Delete("/", positionHandler.DeletePosition)
		})
	})

	r.Get("/price", handlers.NewPriceHandler(svc.Price).Price)
	r.Get("/report", reportHandler.Report)

	r.Route("/share", func(r chi.Router) {
		r.Get("/", shareHandler.ValidateShareLink)
		r.Post("/", shareHandler.CreateShareLink)
	})

	r.With(custommiddleware.ValidateShareTokenMiddleware).Get("/view/{token}", shareHandler.View)

	r.Route("/preferences", func(r chi.Router) {
		preferencesHandler := handlers.NewPreferencesHandler(svc.Preferences)
		r.Get("/calc", preferencesHandler.CalcPreferences)
		r.Put("/calc", preferencesHandler.UpdateCalcPreferences)
		r.Get("/share", preferencesHandler.SharePreferences)
		r.Put("/share", preferencesHandler.UpdateSharePreferences)
		r.Get("/snapshot", preferencesHandler.Snapshot)
		r.Post("/snapshot", preferencesHandler.SaveSnapshot)
	})

	return r
}
