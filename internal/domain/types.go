package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChainID identifies a blockchain network by its numeric chain id,
// e.g. "137" for Polygon mainnet or "80001" for Mumbai
type ChainID string

const (
	ChainPolygon ChainID = "137"
	ChainMumbai  ChainID = "80001"
)

// ParseChainID validates a raw chain id string against the supported chains.
// The second return value reports whether the chain is supported.
func ParseChainID(s string) (ChainID, bool) {
	switch ChainID(s) {
	case ChainPolygon, ChainMumbai:
		return ChainID(s), true
	default:
		return "", false
	}
}

// VotingStrategy is the closed set of supported voting-strategy kinds.
// Only linear quadratic funding is implemented; adding a strategy means
// extending this enum and every switch over it.
type VotingStrategy string

const (
	VotingStrategyLinearQuadraticFunding VotingStrategy = "LINEAR_QUADRATIC_FUNDING"
)

// ParseVotingStrategy maps a raw strategy name to a known strategy.
// The second return value reports whether the name is supported.
func ParseVotingStrategy(name string) (VotingStrategy, bool) {
	switch VotingStrategy(name) {
	case VotingStrategyLinearQuadraticFunding:
		return VotingStrategyLinearQuadraticFunding, true
	default:
		return "", false
	}
}

// VotingStrategyInfo is the voting-strategy section of round metadata
type VotingStrategyInfo struct {
	ID           string         `json:"id"`
	StrategyName VotingStrategy `json:"strategyName"`
}

// RoundMetadata describes a funding round as fetched from the round
// registry. It is immutable for the duration of one recompute and
// re-fetched on the next.
type RoundMetadata struct {
	// TotalPot is the matching pot denominated in Token, human units
	TotalPot float64 `json:"totalPot"`
	// Token is the pot token contract address
	Token string `json:"token"`
	// RoundStartTime and RoundEndTime are unix seconds
	RoundStartTime int64 `json:"roundStartTime"`
	RoundEndTime   int64 `json:"roundEndTime"`
	// MatchingCapPercentage caps any single project's match at this
	// percentage of the pot's USD value. 0 disables the cap.
	MatchingCapPercentage float64            `json:"matchingCapPercentage"`
	VotingStrategy        VotingStrategyInfo `json:"votingStrategy"`
}

// Contribution is one tip from a contributor to a project within a round.
// Contributions are append-only facts sourced from the indexer; they are
// aggregated here, never mutated.
type Contribution struct {
	// Contributor is the sender address
	Contributor string
	// Token is the contribution token contract address
	Token string
	// Amount is the raw token amount in the token's native decimals
	Amount *big.Int
	// ProjectID is the canonical project key (decoded publication id)
	ProjectID string
	// ProjectPayoutAddress is where the project receives payouts
	ProjectPayoutAddress string
	// CreatedAt is the contribution timestamp in unix seconds
	CreatedAt int64
}

// NormalizeAddress lowercases a hex address into its canonical form.
// Inputs that are not valid hex addresses are lowercased as-is so that
// lookups stay consistent with what the indexer returned.
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}
