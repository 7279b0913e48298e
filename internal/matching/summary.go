package matching

import (
	"math/big"

	"github.com/roundlabs/quadmatch/internal/domain"
)

// Summary is the round-level contribution statistics view
type Summary struct {
	ContributionCount       int     `json:"contributionCount"`
	UniqueContributors      int     `json:"uniqueContributors"`
	TotalContributionsInUSD float64 `json:"totalContributionsInUSD"`
	AverageUSDContribution  float64 `json:"averageUSDContribution"`
	// TotalTippedInToken sums contribution amounts in human token units
	// across all contribution tokens
	TotalTippedInToken float64 `json:"totalTippedInToken"`
	AverageTipInToken  float64 `json:"averageTipInToken"`
}

// Summarize computes aggregate statistics for a set of contributions
// using current token prices. The USD average is per unique contributor,
// not per contribution.
func Summarize(contributions []domain.Contribution, prices Prices) *Summary {
	summary := &Summary{ContributionCount: len(contributions)}
	if len(contributions) == 0 {
		return summary
	}

	contributors := make(map[string]struct{})
	totalInToken := new(big.Int)
	totalInUSD := 0.0

	for _, contribution := range contributions {
		contributors[domain.NormalizeAddress(contribution.Contributor)] = struct{}{}
		totalInToken.Add(totalInToken, contribution.Amount)
		totalInUSD += domain.FromWei(contribution.Amount) * prices[domain.NormalizeAddress(contribution.Token)]
	}

	summary.UniqueContributors = len(contributors)
	summary.TotalContributionsInUSD = totalInUSD
	summary.AverageUSDContribution = totalInUSD / float64(len(contributors))
	summary.TotalTippedInToken = domain.FromWei(totalInToken)
	summary.AverageTipInToken = summary.TotalTippedInToken / float64(len(contributions))

	return summary
}
