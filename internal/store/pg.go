package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk upserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query.
// Each record consumes one parameter per inserted field, plus batch-level
// overhead for the ON CONFLICT clause and GORM bookkeeping, which the headroom
// accounts for.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// UpsertRound creates or updates a round's persisted state
func (s *pgStore) UpsertRound(ctx context.Context, round *schema.Round) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain_id"}, {Name: "round_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token",
			"voting_strategy_name",
			"voting_strategy",
			"match_amount",
			"total_pot_in_usd",
			"matching_cap_percentage",
			"is_saturated",
			"round_start_time",
			"round_end_time",
			"updated_at",
		}),
	}).Create(round).Error
	if err != nil {
		return fmt.Errorf("failed to upsert round: %w", err)
	}

	return nil
}

// GetRound retrieves a round's persisted state
func (s *pgStore) GetRound(ctx context.Context, chainID domain.ChainID, roundID string) (*schema.Round, error) {
	var round schema.Round
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND round_id = ?", string(chainID), roundID).
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return &round, nil
}

// ReplaceProjectMatches rewrites a round's match rows in a single transaction.
// Upserting on (chain_id, round_id, project_id) keeps recomputes idempotent,
// and rows for projects absent from the new distribution are removed so reads
// never serve a stale project.
func (s *pgStore) ReplaceProjectMatches(ctx context.Context, chainID domain.ChainID, roundID string, matches []*schema.ProjectMatch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := make([]string, 0, len(matches))
		for _, match := range matches {
			match.ChainID = string(chainID)
			match.RoundID = roundID
			projectIDs = append(projectIDs, match.ProjectID)
		}

		if len(matches) > 0 {
			batchSize := calculateSafeBatchSize(len(matches), 12)
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "chain_id"}, {Name: "round_id"}, {Name: "project_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"project_payout_address",
					"match_amount_in_usd",
					"match_pool_percentage",
					"match_amount_in_token",
					"match_amount",
					"total_contributions_in_usd",
					"total_contributions_in_token",
					"unique_contributors_count",
					"updated_at",
				}),
			}).CreateInBatches(matches, batchSize).Error; err != nil {
				return fmt.Errorf("failed to upsert project matches: %w", err)
			}
		}

		stale := tx.Where("chain_id = ? AND round_id = ?", string(chainID), roundID)
		if len(projectIDs) > 0 {
			stale = stale.Where("project_id NOT IN ?", projectIDs)
		}
		if err := stale.Delete(&schema.ProjectMatch{}).Error; err != nil {
			return fmt.Errorf("failed to delete stale project matches: %w", err)
		}

		return nil
	})
}

// GetProjectMatches retrieves all match rows for a round
func (s *pgStore) GetProjectMatches(ctx context.Context, chainID domain.ChainID, roundID string) ([]*schema.ProjectMatch, error) {
	var matches []*schema.ProjectMatch
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND round_id = ?", string(chainID), roundID).
		Order("project_id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project matches: %w", err)
	}

	return matches, nil
}

// GetProjectMatchesByProjectIDs retrieves a round's match rows for a subset of projects
func (s *pgStore) GetProjectMatchesByProjectIDs(ctx context.Context, chainID domain.ChainID, roundID string, projectIDs []string) ([]*schema.ProjectMatch, error) {
	if len(projectIDs) == 0 {
		return []*schema.ProjectMatch{}, nil
	}

	var matches []*schema.ProjectMatch
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND round_id = ? AND project_id IN ?", string(chainID), roundID, projectIDs).
		Order("project_id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project matches by project ids: %w", err)
	}

	return matches, nil
}

// UpsertMostRecentTips advances the newest-tip watermark per (round, project).
// The timestamp is monotonic: GREATEST keeps the stored value when the incoming
// row is older, and the contributor address only changes when the timestamp
// actually advances.
func (s *pgStore) UpsertMostRecentTips(ctx context.Context, tips []*schema.MostRecentTip) error {
	if len(tips) == 0 {
		return nil
	}

	batchSize := calculateSafeBatchSize(len(tips), 5)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain_id"}, {Name: "round_id"}, {Name: "project_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"user_id": gorm.Expr(
				"CASE WHEN excluded.timestamp > most_recent_tips.timestamp THEN excluded.user_id ELSE most_recent_tips.user_id END"),
			"timestamp":  gorm.Expr("GREATEST(most_recent_tips.timestamp, excluded.timestamp)"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).CreateInBatches(tips, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert most recent tips: %w", err)
	}

	return nil
}

// GetMostRecentTip retrieves the newest-tip watermark for a project
func (s *pgStore) GetMostRecentTip(ctx context.Context, chainID domain.ChainID, roundID, projectID string) (*schema.MostRecentTip, error) {
	var tip schema.MostRecentTip
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND round_id = ? AND project_id = ?", string(chainID), roundID, projectID).
		First(&tip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get most recent tip: %w", err)
	}

	return &tip, nil
}

// UpsertRoundSummary creates or updates a round's aggregate statistics
func (s *pgStore) UpsertRoundSummary(ctx context.Context, summary *schema.RoundSummary) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain_id"}, {Name: "round_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"contribution_count",
			"unique_contributors",
			"total_contributions_in_usd",
			"average_usd_contribution",
			"total_tipped_in_token",
			"average_tip_in_token",
			"updated_at",
		}),
	}).Create(summary).Error
	if err != nil {
		return fmt.Errorf("failed to upsert round summary: %w", err)
	}

	return nil
}

// GetRoundSummary retrieves a round's aggregate statistics
func (s *pgStore) GetRoundSummary(ctx context.Context, chainID domain.ChainID, roundID string) (*schema.RoundSummary, error) {
	var summary schema.RoundSummary
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND round_id = ?", string(chainID), roundID).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round summary: %w", err)
	}

	return &summary, nil
}
