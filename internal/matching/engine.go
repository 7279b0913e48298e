// Package matching implements the linear quadratic-funding allocation:
// grouping contributions, scoring projects, normalizing against the pot
// and enforcing the optional per-project matching cap. Everything in this
// package is pure; prices are fetched once per run by the orchestrator and
// passed in.
package matching

import (
	"math"
	"math/big"

	"github.com/roundlabs/quadmatch/internal/domain"
)

// Prices maps lowercase token addresses to USD prices
type Prices map[string]float64

// ProjectMatch is the computed distribution entry for one project
type ProjectMatch struct {
	ProjectID               string  `json:"projectId"`
	MatchAmountInUSD        float64 `json:"matchAmountInUSD"`
	TotalContributionsInUSD float64 `json:"totalContributionsInUSD"`
	// TotalContributionsInToken is the summed contribution amount in human
	// token units across all contribution tokens
	TotalContributionsInToken float64 `json:"totalContributionsInToken"`
	// MatchPoolPercentage is the project's fraction of the pot, 0..1
	MatchPoolPercentage float64 `json:"matchPoolPercentage"`
	// MatchAmountInToken is the match denominated in the pot token
	MatchAmountInToken float64 `json:"matchAmountInToken"`
	// MatchAmount is the match in raw integer pot-token units
	MatchAmount             string `json:"matchAmount"`
	ProjectPayoutAddress    string `json:"projectPayoutAddress"`
	UniqueContributorsCount int    `json:"uniqueContributorsCount"`
}

// contributorTotal accumulates one contributor's repeated tips to a project
type contributorTotal struct {
	usdValue      float64
	amountInToken *big.Int
}

// projectGroup aggregates a project's contributions keyed by contributor.
// Insertion order is tracked so runs over identical input produce identical
// output, including the last-project leftover assignment.
type projectGroup struct {
	payoutAddress string
	contributors  []string
	totals        map[string]*contributorTotal
}

// Match computes the matching-fund distribution for one round.
//
// prices holds average USD prices for every contribution token over the
// round window; potPrice is the pot token's average USD price over the same
// window. Tokens without a resolvable price contribute zero USD but still
// count toward token totals.
//
// The raw quadratic scores are always rescaled so the pot is fully
// distributed, and the final raw-unit conversion assigns the exact
// remaining pot units to the last project so integer allocations sum to
// the pot precisely.
//
// The second return value reports saturation: the raw quadratic scores
// exceeded the pot's USD value, meaning the rescale shrank every match.
func Match(metadata domain.RoundMetadata, contributions []domain.Contribution, prices Prices, potPrice float64) ([]ProjectMatch, bool) {
	if len(contributions) == 0 {
		return []ProjectMatch{}, false
	}

	projectOrder, groups := groupByProject(contributions, prices)

	matches := make([]ProjectMatch, 0, len(groups))
	totalMatchInUSD := 0.0

	for _, projectID := range projectOrder {
		group := groups[projectID]

		sumOfSqrt := 0.0
		sumOfContributions := 0.0
		sumInToken := new(big.Int)

		for _, contributor := range group.contributors {
			total := group.totals[contributor]
			sumInToken.Add(sumInToken, total.amountInToken)
			sumOfSqrt += math.Sqrt(total.usdValue)
			sumOfContributions += total.usdValue
		}

		matchInUSD := sumOfSqrt * sumOfSqrt

		// a NaN score (e.g. a negative USD value) must not poison the
		// round-wide total; the project still appears, with a zero match
		if math.IsNaN(matchInUSD) {
			matchInUSD = 0
		}

		matches = append(matches, ProjectMatch{
			ProjectID:                 projectID,
			MatchAmountInUSD:          matchInUSD,
			TotalContributionsInUSD:   sumOfContributions,
			TotalContributionsInToken: domain.FromWei(sumInToken),
			MatchAmount:               "0",
			ProjectPayoutAddress:      group.payoutAddress,
			UniqueContributorsCount:   len(group.contributors),
		})

		totalMatchInUSD += matchInUSD
	}

	totalPotInUSD := metadata.TotalPot * potPrice
	if totalMatchInUSD == 0 || totalPotInUSD <= 0 {
		return []ProjectMatch{}, false
	}

	saturated := totalMatchInUSD > totalPotInUSD

	// Rescale every project so the pot is always distributed at 100%, even
	// when raw quadratic scores fall short of the pot's USD value.
	for i := range matches {
		m := &matches[i]
		m.MatchAmountInUSD = m.MatchAmountInUSD * (totalPotInUSD / totalMatchInUSD)
		m.MatchPoolPercentage = m.MatchAmountInUSD / totalPotInUSD
		m.MatchAmountInToken = m.MatchPoolPercentage * metadata.TotalPot
	}

	residualExcess := 0.0
	if metadata.MatchingCapPercentage > 0 {
		capInUSD := totalPotInUSD * metadata.MatchingCapPercentage / 100
		residualExcess = ApplyMatchingCap(matches, metadata.TotalPot, totalPotInUSD, capInUSD)
	}

	assignRawAmounts(matches, metadata.TotalPot, residualExcess)

	return matches, saturated
}

// assignRawAmounts converts each project's token match to raw integer
// units. All projects truncate except the last, which absorbs the exact
// remainder of the pot so the integer allocations conserve it. When the
// cap left residual excess undistributed the pot is intentionally not
// fully allocated, so every project truncates.
func assignRawAmounts(matches []ProjectMatch, totalPot float64, residualExcess float64) {
	leftover := domain.ToWei(totalPot)

	for i := range matches {
		m := &matches[i]
		wei := domain.ToWei(m.MatchAmountInToken)

		if i == len(matches)-1 && residualExcess == 0 {
			if leftover.Sign() < 0 {
				leftover.SetUint64(0)
			}
			m.MatchAmount = leftover.String()
		} else {
			m.MatchAmount = wei.String()
		}

		leftover.Sub(leftover, wei)
	}
}

// groupByProject buckets contributions by project, then by contributor
// within each project, summing token amounts and USD values. A contributor
// tipping the same project repeatedly collapses into one entry.
func groupByProject(contributions []domain.Contribution, prices Prices) ([]string, map[string]*projectGroup) {
	order := make([]string, 0)
	groups := make(map[string]*projectGroup)

	for _, contribution := range contributions {
		usdValue := domain.FromWei(contribution.Amount) * prices[domain.NormalizeAddress(contribution.Token)]

		group, ok := groups[contribution.ProjectID]
		if !ok {
			group = &projectGroup{
				payoutAddress: contribution.ProjectPayoutAddress,
				totals:        make(map[string]*contributorTotal),
			}
			groups[contribution.ProjectID] = group
			order = append(order, contribution.ProjectID)
		}

		total, ok := group.totals[contribution.Contributor]
		if !ok {
			group.contributors = append(group.contributors, contribution.Contributor)
			group.totals[contribution.Contributor] = &contributorTotal{
				usdValue:      usdValue,
				amountInToken: new(big.Int).Set(contribution.Amount),
			}
			continue
		}

		total.usdValue += usdValue
		total.amountInToken.Add(total.amountInToken, contribution.Amount)
	}

	return order, groups
}
