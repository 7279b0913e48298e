package domain

import "errors"

var (
	// ErrUnsupportedVotingStrategy is returned by the summary path when a
	// round uses a voting strategy this engine does not implement
	ErrUnsupportedVotingStrategy = errors.New("unsupported voting strategy")

	// ErrRoundNotFound is returned when round metadata cannot be resolved
	ErrRoundNotFound = errors.New("round not found")

	// ErrNoResults is returned when a match recompute produced no result set
	ErrNoResults = errors.New("no match results")
)
