package schema

import (
	"time"
)

// MostRecentTip represents the most_recent_tips table - the newest contribution
// the engine has seen per (round, project). The timestamp only ever moves
// forward so clients can poll it to learn when their tip is included.
type MostRecentTip struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID is the chain the round contract lives on
	ChainID string `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_most_recent_tips_chain_round_project,priority:1"`
	// RoundID is the lowercased round contract address
	RoundID string `gorm:"column:round_id;not null;type:text;uniqueIndex:idx_most_recent_tips_chain_round_project,priority:2"`
	// ProjectID is the decoded publication id the tip voted for
	ProjectID string `gorm:"column:project_id;not null;type:text;uniqueIndex:idx_most_recent_tips_chain_round_project,priority:3"`
	// UserID is the contributor address of the newest tip
	UserID string `gorm:"column:user_id;not null;type:text"`
	// Timestamp is the creation time of the newest tip as a unix timestamp
	Timestamp int64 `gorm:"column:timestamp;not null;default:0"`
	// CreatedAt is the timestamp when this row was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last advanced
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MostRecentTip model
func (MostRecentTip) TableName() string {
	return "most_recent_tips"
}
