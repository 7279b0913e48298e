// Package scheduler drives the recurring recompute loop: every tick it
// discovers the active rounds per chain and refreshes each round's match
// distribution and summary. Cycles never overlap; a tick that arrives while
// a cycle is still running is skipped.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/providers/graph"
	"github.com/roundlabs/quadmatch/internal/recompute"
)

// Config holds the recompute loop configuration
type Config struct {
	// Interval between recompute cycles
	Interval time.Duration
	// Chains lists the chain ids whose active rounds are recomputed
	Chains []domain.ChainID
	// RoundConcurrency bounds how many rounds are recomputed in parallel
	RoundConcurrency int
}

// Scheduler defines the interface for the recurring recompute loop
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Start begins the recompute loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the loop
	// This waits for the in-flight cycle to finish
	Stop(ctx context.Context) error

	// Name returns the scheduler's name for logging and identification
	Name() string
}

type roundScheduler struct {
	config      Config
	graph       graph.Client
	recomputer  recompute.Recomputer
	clock       adapter.Clock
	running     atomic.Bool
	cycleActive atomic.Bool
	stopChan    chan struct{}
	stoppedCh   chan struct{}
}

// NewScheduler creates a new round recompute scheduler
func NewScheduler(config Config, graphClient graph.Client, recomputer recompute.Recomputer, clock adapter.Clock) Scheduler {
	return &roundScheduler{
		config:     config,
		graph:      graphClient,
		recomputer: recomputer,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the scheduler's name
func (s *roundScheduler) Name() string {
	return "round-recompute-scheduler"
}

// Start begins the recompute loop. The first cycle runs immediately, then
// one per interval.
func (s *roundScheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting round recompute scheduler",
		zap.Duration("interval", s.config.Interval),
		zap.Int("round_concurrency", s.config.RoundConcurrency),
		zap.Any("chains", s.config.Chains),
	)

	ticker := s.clock.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Round recompute scheduler stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Round recompute scheduler stop requested")
			return nil
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// Stop gracefully stops the scheduler with timeout support
func (s *roundScheduler) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping round recompute scheduler")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Round recompute scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Round recompute scheduler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle refreshes every active round once. Overlapping ticks are skipped
// rather than queued so a slow cycle cannot pile up behind itself.
func (s *roundScheduler) runCycle(ctx context.Context) {
	if !s.cycleActive.CompareAndSwap(false, true) {
		logger.WarnCtx(ctx, "Previous recompute cycle still running, skipping tick")
		return
	}
	defer s.cycleActive.Store(false)

	runID := uuid.NewString()
	startTime := s.clock.Now()

	concurrency := s.config.RoundConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	pool := pond.NewPool(concurrency, pond.WithContext(ctx))

	total := 0
	for _, chainID := range s.config.Chains {
		rounds, err := s.graph.FetchActiveRounds(ctx, chainID)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to fetch active rounds: %w", err),
				zap.String("run_id", runID),
				zap.String("chain_id", string(chainID)))
			continue
		}

		total += len(rounds)
		for _, round := range rounds {
			pool.Submit(func() {
				s.recomputeRound(ctx, chainID, round.ID, runID)
			})
		}
	}

	pool.StopAndWait()

	logger.InfoCtx(ctx, "Recompute cycle finished",
		zap.String("run_id", runID),
		zap.Int("rounds", total),
		zap.Duration("elapsed", s.clock.Since(startTime)))
}

// recomputeRound refreshes one round's match distribution and summary.
// The two updates fail independently: a broken summary never blocks the
// match path, and vice versa. A panic in either is contained to this round.
func (s *roundScheduler) recomputeRound(ctx context.Context, chainID domain.ChainID, roundID, runID string) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("recovered from panic while recomputing round: %v", r),
				zap.String("run_id", runID),
				zap.String("chain_id", string(chainID)),
				zap.String("round_id", roundID))
		}
	}()

	if _, err := s.recomputer.UpdateRoundMatch(ctx, chainID, roundID); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to update round match: %w", err),
			zap.String("run_id", runID),
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID))
	}

	if _, err := s.recomputer.UpdateRoundSummary(ctx, chainID, roundID); err != nil {
		if errors.Is(err, domain.ErrUnsupportedVotingStrategy) {
			logger.WarnCtx(ctx, "Skipping summary for unsupported voting strategy",
				zap.String("run_id", runID),
				zap.String("chain_id", string(chainID)),
				zap.String("round_id", roundID))
			return
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to update round summary: %w", err),
			zap.String("run_id", runID),
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID))
	}
}
