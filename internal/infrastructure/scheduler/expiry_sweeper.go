package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ClaimExpirer expires claimed promotions whose window has ended.
type ClaimExpirer interface {
	ExpireClaims(ctx context.Context, now time.Time) (int, error)
}

// ExpirySweeperConfig holds configuration for the expiry sweeper
type ExpirySweeperConfig struct {
	// Interval is how often the sweep runs
	Interval time.Duration
}

// DefaultExpirySweeperConfig returns default sweeper configuration
func DefaultExpirySweeperConfig() ExpirySweeperConfig {
	return ExpirySweeperConfig{
		Interval: time.Hour,
	}
}

// ExpirySweeper periodically expires stale promotion claims in the
// background. A claim left AVAILABLE past its promotion's end date is dead
// weight; the sweep flips it to EXPIRED so customers see accurate state.
type ExpirySweeper struct {
	config  ExpirySweeperConfig
	expirer ClaimExpirer
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewExpirySweeper creates a new expiry sweeper
func NewExpirySweeper(config ExpirySweeperConfig, expirer ClaimExpirer, logger *zap.Logger) *ExpirySweeper {
	if config.Interval <= 0 {
		config.Interval = DefaultExpirySweeperConfig().Interval
	}
	return &ExpirySweeper{
		config:  config,
		expirer: expirer,
		logger:  logger,
	}
}

// Start starts the background sweep loop
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Promotion expiry sweeper started",
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop stops the sweep loop and waits for an in-flight sweep to finish
func (s *ExpirySweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Promotion expiry sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ExpirySweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one expiry pass. Failures are logged and retried on the next
// tick; a broken sweep must never take the process down.
func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireClaims(ctx, time.Now())
	if err != nil {
		s.logger.Error("Promotion expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		s.logger.Info("Promotion expiry sweep completed",
			zap.Int("expired_claims", expired),
		)
	}
}
