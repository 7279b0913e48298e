package schema

import (
	"time"
)

// ProjectMatch represents the project_matches table - one project's slice of a
// round's matching pot, rewritten on every recompute
type ProjectMatch struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID is the chain the round contract lives on
	ChainID string `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_project_matches_chain_round_project,priority:1"`
	// RoundID is the lowercased round contract address
	RoundID string `gorm:"column:round_id;not null;type:text;uniqueIndex:idx_project_matches_chain_round_project,priority:2"`
	// ProjectID is the decoded publication id the contributions voted for
	ProjectID string `gorm:"column:project_id;not null;type:text;uniqueIndex:idx_project_matches_chain_round_project,priority:3"`
	// ProjectPayoutAddress is where the project's matched funds are paid out
	ProjectPayoutAddress string `gorm:"column:project_payout_address;not null;type:text"`
	// MatchAmountInUSD is the project's matched amount after rescaling to the pot
	MatchAmountInUSD float64 `gorm:"column:match_amount_in_usd;not null"`
	// MatchPoolPercentage is the project's share of the pot in [0, 1]
	MatchPoolPercentage float64 `gorm:"column:match_pool_percentage;not null"`
	// MatchAmountInToken is the matched amount in whole tokens
	MatchAmountInToken float64 `gorm:"column:match_amount_in_token;not null"`
	// MatchAmount is the matched amount in the token's smallest unit (stored as string to support up to 78 digits)
	MatchAmount string `gorm:"column:match_amount;not null;type:numeric(78,0)"`
	// TotalContributionsInUSD is the USD sum of the project's contributions
	TotalContributionsInUSD float64 `gorm:"column:total_contributions_in_usd;not null"`
	// TotalContributionsInToken is the whole-token sum of the project's contributions
	TotalContributionsInToken float64 `gorm:"column:total_contributions_in_token;not null"`
	// UniqueContributorsCount is the number of distinct contributor addresses
	UniqueContributorsCount int `gorm:"column:unique_contributors_count;not null;default:0"`
	// CreatedAt is the timestamp when this match row was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this match row was last recomputed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ProjectMatch model
func (ProjectMatch) TableName() string {
	return "project_matches"
}
