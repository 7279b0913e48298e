package domain

// RoundMatchUpdatedEvent announces that a round's matching distribution was
// recomputed and, when Persisted is true, written to the database
type RoundMatchUpdatedEvent struct {
	// EventID is a ULID assigned when the event is published
	EventID string `json:"eventId"`
	// ChainID is the chain the round contract lives on
	ChainID ChainID `json:"chainId"`
	// RoundID is the lowercased round contract address
	RoundID string `json:"roundId"`
	// ProjectCount is the number of projects in the recomputed distribution
	ProjectCount int `json:"projectCount"`
	// IsSaturated reports whether the summed contributions fully consume the pot
	IsSaturated bool `json:"isSaturated"`
	// Persisted is false when the distribution was computed but could not be stored
	Persisted bool `json:"persisted"`
	// RecomputedAt is the recompute time as a unix timestamp
	RecomputedAt int64 `json:"recomputedAt"`
}
