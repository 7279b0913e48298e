package store

import (
	"context"

	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
type Store interface {
	// UpsertRound creates or updates a round's persisted state
	UpsertRound(ctx context.Context, round *schema.Round) error
	// GetRound retrieves a round's persisted state, returning nil when the round has never been recomputed
	GetRound(ctx context.Context, chainID domain.ChainID, roundID string) (*schema.Round, error)
	// ReplaceProjectMatches rewrites a round's match rows in a single transaction,
	// removing rows for projects that no longer appear in the distribution
	ReplaceProjectMatches(ctx context.Context, chainID domain.ChainID, roundID string, matches []*schema.ProjectMatch) error
	// GetProjectMatches retrieves all match rows for a round ordered by project id
	GetProjectMatches(ctx context.Context, chainID domain.ChainID, roundID string) ([]*schema.ProjectMatch, error)
	// GetProjectMatchesByProjectIDs retrieves a round's match rows for a subset of projects
	GetProjectMatchesByProjectIDs(ctx context.Context, chainID domain.ChainID, roundID string, projectIDs []string) ([]*schema.ProjectMatch, error)
	// UpsertMostRecentTips advances the newest-tip watermark per (round, project).
	// Timestamps only move forward: a stale row never overwrites a newer one.
	UpsertMostRecentTips(ctx context.Context, tips []*schema.MostRecentTip) error
	// GetMostRecentTip retrieves the newest-tip watermark for a project, returning nil when none exists
	GetMostRecentTip(ctx context.Context, chainID domain.ChainID, roundID, projectID string) (*schema.MostRecentTip, error)
	// UpsertRoundSummary creates or updates a round's aggregate statistics
	UpsertRoundSummary(ctx context.Context, summary *schema.RoundSummary) error
	// GetRoundSummary retrieves a round's aggregate statistics, returning nil when none exists
	GetRoundSummary(ctx context.Context, chainID domain.ChainID, roundID string) (*schema.RoundSummary, error)
}

// AllModels lists every GORM model the store persists, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&schema.Round{},
		&schema.ProjectMatch{},
		&schema.MostRecentTip{},
		&schema.RoundSummary{},
	}
}
