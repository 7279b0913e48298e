package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Round represents the rounds table - the last persisted state of a funding
// round's matching distribution inputs
type Round struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID is the chain the round contract lives on
	ChainID string `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_rounds_chain_round,priority:1"`
	// RoundID is the lowercased round contract address
	RoundID string `gorm:"column:round_id;not null;type:text;uniqueIndex:idx_rounds_chain_round,priority:2"`
	// Token is the address of the token the matching pot is denominated in
	Token string `gorm:"column:token;not null;type:text"`
	// VotingStrategyName identifies the matching formula used by the round
	VotingStrategyName string `gorm:"column:voting_strategy_name;not null;type:text"`
	// VotingStrategy is the raw voting-strategy section of the round metadata
	// as last fetched, kept for auditing recomputes
	VotingStrategy datatypes.JSON `gorm:"column:voting_strategy;type:jsonb"`
	// MatchAmount is the raw pot size in the token's smallest unit (stored as string to support up to 78 digits)
	MatchAmount string `gorm:"column:match_amount;not null;type:numeric(78,0)"`
	// TotalPotInUSD is the pot size converted at the recompute-time token price
	TotalPotInUSD float64 `gorm:"column:total_pot_in_usd;not null"`
	// MatchingCapPercentage is the per-project ceiling as a percentage of the pot, 0 when uncapped
	MatchingCapPercentage float64 `gorm:"column:matching_cap_percentage;not null;default:0"`
	// IsSaturated reports whether the summed contributions fully consume the pot
	IsSaturated bool `gorm:"column:is_saturated;not null;default:false"`
	// RoundStartTime is the round opening time as a unix timestamp
	RoundStartTime int64 `gorm:"column:round_start_time;not null;default:0"`
	// RoundEndTime is the round closing time as a unix timestamp
	RoundEndTime int64 `gorm:"column:round_end_time;not null;default:0"`
	// CreatedAt is the timestamp when this round was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this round was last recomputed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Round model
func (Round) TableName() string {
	return "rounds"
}
