package schema

import (
	"time"
)

// RoundSummary represents the round_summaries table - aggregate contribution
// statistics for a round, rewritten on every recompute
type RoundSummary struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID is the chain the round contract lives on
	ChainID string `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_round_summaries_chain_round,priority:1"`
	// RoundID is the lowercased round contract address
	RoundID string `gorm:"column:round_id;not null;type:text;uniqueIndex:idx_round_summaries_chain_round,priority:2"`
	// ContributionCount is the total number of contributions in the round
	ContributionCount int `gorm:"column:contribution_count;not null;default:0"`
	// UniqueContributors is the number of distinct contributor addresses
	UniqueContributors int `gorm:"column:unique_contributors;not null;default:0"`
	// TotalContributionsInUSD is the USD sum of all contributions
	TotalContributionsInUSD float64 `gorm:"column:total_contributions_in_usd;not null"`
	// AverageUSDContribution is the USD total divided by the unique contributor count
	AverageUSDContribution float64 `gorm:"column:average_usd_contribution;not null"`
	// TotalTippedInToken is the whole-token sum of all contributions
	TotalTippedInToken float64 `gorm:"column:total_tipped_in_token;not null"`
	// AverageTipInToken is the token total divided by the contribution count
	AverageTipInToken float64 `gorm:"column:average_tip_in_token;not null"`
	// CreatedAt is the timestamp when this summary was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this summary was last recomputed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RoundSummary model
func (RoundSummary) TableName() string {
	return "round_summaries"
}
