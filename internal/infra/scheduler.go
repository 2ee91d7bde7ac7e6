package infra

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"bricsbtc/internal/service"
	"bricsbtc/internal/usecase"
	"bricsbtc/pkg/logger"
)

// Scheduler manages the platform's recurring jobs: the market ticker
// refresh, the trade payment-window sweep and the daily ROI accrual.
type Scheduler struct {
	cron          *cron.Cron
	tickerService *service.TickerService
	tradeService  *usecase.TradeService
	investService *usecase.InvestService
}

// NewScheduler creates a new scheduler
func NewScheduler(
	tickerService *service.TickerService,
	tradeService *usecase.TradeService,
	investService *usecase.InvestService,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		tickerService: tickerService,
		tradeService:  tradeService,
		investService: investService,
	}
}

// Start registers and starts all jobs
func (s *Scheduler) Start() error {
	// Ticker refresh every 10 seconds; the HTTP layer only ever reads the
	// cached snapshot
	_, err := s.cron.AddFunc("*/10 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		if err := s.tickerService.Refresh(ctx); err != nil {
			logger.Warn().Err(err).Msg("ticker refresh failed")
		}
	})
	if err != nil {
		return err
	}

	// Payment-window sweep every minute
	_, err = s.cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.tradeService.ExpireStale(ctx); err != nil {
			logger.Error().Err(err).Msg("trade expiry sweep failed")
		}
	})
	if err != nil {
		return err
	}

	// ROI accrual hourly; the accrual query itself only picks up packages
	// a full day past their last credit, so running hourly just bounds the
	// lag after the day boundary
	_, err = s.cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.investService.AccrueDaily(ctx); err != nil {
			logger.Error().Err(err).Msg("ROI accrual failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("scheduler started")
	return nil
}

// Stop stops the scheduler gracefully, waiting for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("scheduler stopped")
}
