// Package app builds the dependency graph shared by the server and the CLI.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/preferences"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/secrets"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/stooq"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/yahoo"
)

const shareStatsSpec = "@hourly"

// App holds the opened stores and the services built on them.
type App struct {
	Config    *config.Config
	Logger    *logging.Logger
	DB        *sql.DB
	Prefs     *preferences.Store
	Cache     *market.HistoryCache
	Services  api.Services
	Scheduler *scheduler.Scheduler
}

// New opens the database and preference store and wires every service.
// The scheduler is configured but not started.
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	for _, path := range []string{cfg.Database.Path, cfg.Preferences.Path} {
		if err := ensureDir(path); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	prefs, err := preferences.Open(cfg.Preferences.Path, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Prefs:  prefs,
	}

	if err := a.wire(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) wire() error {
	cfg := a.Config

	box, err := a.secretBox()
	if err != nil {
		return err
	}

	portfolioRepo := repository.NewPortfolioRepository(a.DB)
	positionRepo := repository.NewPositionRepository(a.DB)
	shareLinkRepo := repository.NewShareLinkRepository(a.DB)

	search := yahoo.NewFinanceClient(cfg.Market.SearchBaseURL, cfg.Market.HTTPTimeout.Duration)
	history := stooq.NewClient(cfg.Market.HistoryBaseURL, cfg.Market.HTTPTimeout.Duration)
	a.Cache = market.NewHistoryCache(history, cfg.Market.CacheTTL.Duration)
	adapter := market.NewAdapter(market.NewResolver(search, a.Logger), a.Cache, a.Logger, cfg.Market.MaxConcurrency)

	var printer render.PDFPrinter
	if cfg.Render.PDFEnabled {
		printer = render.NewChromePrinter(cfg.Render.Timeout.Duration, cfg.Render.ChromePath)
	} else {
		a.Logger.Info().Msg("pdf rendering disabled, reports are served as html")
	}

	portfolioService := service.NewPortfolioService(portfolioRepo, positionRepo)

	a.Services = api.Services{
		System:      service.NewSystemService(a.DB, a.Prefs),
		Portfolio:   portfolioService,
		Position:    service.NewPositionService(positionRepo, portfolioRepo),
		Price:       service.NewPriceService(adapter),
		Report:      service.NewReportService(portfolioRepo, positionRepo, adapter, a.Prefs, cfg.Render.Currency),
		Share:       service.NewShareService(shareLinkRepo, portfolioRepo, box),
		Preferences: service.NewPreferencesService(a.Prefs, portfolioService, box),
		Renderer:    render.NewRenderer(printer, a.Logger),
	}

	a.Scheduler = scheduler.New(a.Logger)
	if err := a.Scheduler.AddCachePurge(cfg.Market.CachePurgeSpec, a.Cache); err != nil {
		return err
	}
	if err := a.Scheduler.AddShareLinkStats(shareStatsSpec, shareLinkRepo); err != nil {
		return err
	}

	return nil
}

// secretBox builds the password box from the configured key. Without a key
// an ephemeral one is generated, and password protected links stop working
// when the process restarts.
func (a *App) secretBox() (*secrets.Box, error) {
	key := a.Config.Share.SecretKey
	if key == "" {
		generated, err := secrets.GenerateKey()
		if err != nil {
			return nil, err
		}
		a.Logger.Warn().Msg("SHARE_SECRET_KEY not set, using an ephemeral key; password protected links will not survive a restart")
		key = generated
	}

	box, err := secrets.NewBox(key)
	if err != nil {
		return nil, fmt.Errorf("invalid SHARE_SECRET_KEY: %w", err)
	}
	return box, nil
}

// Close releases the database and the preference store.
func (a *App) Close() error {
	var errs []error
	if a.Prefs != nil {
		if err := a.Prefs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close preference store: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
