// Package scheduler runs the periodic flock maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const jobTimeout = 2 * time.Minute

// Job names, as reported in metrics and logs.
const (
	JobBatchAge = "batch_age"
	JobLowStock = "low_stock"
)

// AgeRefresher recomputes batch ages.
type AgeRefresher interface {
	RefreshAges(ctx context.Context, now time.Time) (int, error)
}

// LowStockScanner lists stock items at or below their threshold on every farm.
type LowStockScanner interface {
	ScanLow(ctx context.Context) ([]*model.Stock, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.SchedulerConfig
	batches AgeRefresher
	stock   LowStockScanner
	now     func() time.Time
	log     zerolog.Logger
}

// New creates a scheduler. Jobs are registered by Start.
func New(cfg config.SchedulerConfig, batches AgeRefresher, stock LowStockScanner) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		batches: batches,
		stock:   stock,
		now:     time.Now,
		log:     logger.Component("scheduler"),
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.BatchAgeCron, s.run(JobBatchAge, s.RefreshBatchAges)); err != nil {
		return fmt.Errorf("schedule %s: %w", JobBatchAge, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.LowStockCron, s.run(JobLowStock, s.ScanLowStock)); err != nil {
		return fmt.Errorf("schedule %s: %w", JobLowStock, err)
	}

	s.cron.Start()
	s.log.Info().
		Str("batch_age_cron", s.cfg.BatchAgeCron).
		Str("low_stock_cron", s.cfg.LowStockCron).
		Msg("Scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		err := job(ctx)
		metrics.RecordSchedulerRun(name, err)
		if err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("Scheduled job failed")
			return
		}
		s.log.Debug().Str("job", name).Dur("duration", time.Since(start)).Msg("Scheduled job finished")
	}
}

// RefreshBatchAges brings every active batch age up to date.
func (s *Scheduler) RefreshBatchAges(ctx context.Context) error {
	n, err := s.batches.RefreshAges(ctx, s.now())
	if err != nil {
		return err
	}
	s.log.Info().Int("updated", n).Msg("Batch ages refreshed")
	return nil
}

// ScanLowStock publishes the number of low stock items and logs each one.
func (s *Scheduler) ScanLowStock(ctx context.Context) error {
	items, err := s.stock.ScanLow(ctx)
	if err != nil {
		return err
	}
	metrics.SetLowStockItems(len(items))
	for _, item := range items {
		s.log.Warn().
			Str("farm_id", item.FarmID).
			Str("item", item.Item).
			Float64("quantity", item.Quantity).
			Float64("threshold", item.Threshold).
			Msg("Stock below threshold")
	}
	return nil
}
