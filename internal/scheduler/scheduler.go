// Package scheduler runs the periodic maintenance jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
)

// CachePurger drops expired cache entries and reports how many went.
type CachePurger interface {
	Purge() int
}

// ShareLinkStatter summarises the share link log.
type ShareLinkStatter interface {
	GetShareLinkStats(ctx context.Context, now time.Time) (repository.ShareLinkStats, error)
}

// Scheduler wraps a cron runner with the server's jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *logging.Logger
}

// New creates an empty Scheduler.
func New(logger *logging.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// AddCachePurge purges cache on spec, e.g. "@every 10m".
func (s *Scheduler) AddCachePurge(spec string, cache CachePurger) error {
	_, err := s.cron.AddFunc(spec, func() {
		if removed := cache.Purge(); removed > 0 {
			s.logger.Debug().Int("removed", removed).Msg("purged expired price histories")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cache purge %q: %w", spec, err)
	}
	return nil
}

// AddShareLinkStats logs the share link totals on spec.
func (s *Scheduler) AddShareLinkStats(spec string, links ShareLinkStatter) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := links.GetShareLinkStats(ctx, time.Now())
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to collect share link stats")
			return
		}
		s.logger.Info().
			Int("total", stats.Total).
			Int("expired", stats.Expired).
			Int("exhausted", stats.Exhausted).
			Msg("share links")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule share link stats %q: %w", spec, err)
	}
	return nil
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stop timed out with jobs still running")
	}
}

// cronLogger adapts the arbor logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Str("fields", fmt.Sprint(keysAndValues...)).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Str("fields", fmt.Sprint(keysAndValues...)).Msg("cron: " + msg)
}
