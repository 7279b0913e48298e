package dto

import (
	"github.com/roundlabs/quadmatch/internal/recompute"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ProjectMatch is one project's slice of a round's matching pot
type ProjectMatch struct {
	ChainID                   string  `json:"chainId"`
	RoundID                   string  `json:"roundId"`
	ProjectID                 string  `json:"projectId"`
	ProjectPayoutAddress      string  `json:"projectPayoutAddress"`
	MatchAmountInUSD          float64 `json:"matchAmountInUSD"`
	MatchPoolPercentage       float64 `json:"matchPoolPercentage"`
	MatchAmountInToken        float64 `json:"matchAmountInToken"`
	MatchAmount               string  `json:"matchAmount"`
	TotalContributionsInUSD   float64 `json:"totalContributionsInUSD"`
	TotalContributionsInToken float64 `json:"totalContributionsInToken"`
	UniqueContributorsCount   int     `json:"uniqueContributorsCount"`
}

// MatchData is the payload of the match endpoints
type MatchData struct {
	Persisted bool           `json:"persisted"`
	Saturated bool           `json:"saturated"`
	Matches   []ProjectMatch `json:"matches"`
}

// RoundSummary aggregates a round's contribution statistics
type RoundSummary struct {
	ChainID                 string  `json:"chainId"`
	RoundID                 string  `json:"roundId"`
	ContributionCount       int     `json:"contributionCount"`
	UniqueContributors      int     `json:"uniqueContributors"`
	TotalContributionsInUSD float64 `json:"totalContributionsInUSD"`
	AverageUSDContribution  float64 `json:"averageUSDContribution"`
	TotalTippedInToken      float64 `json:"totalTippedInToken"`
	AverageTipInToken       float64 `json:"averageTipInToken"`
}

// SummaryData is the payload of the summary endpoint
type SummaryData struct {
	Persisted bool          `json:"persisted"`
	Summary   *RoundSummary `json:"summary"`
}

// PublicationCheck identifies one tip whose inclusion in the stored
// watermark should be verified
type PublicationCheck struct {
	PublicationID       string `json:"publicationId" binding:"required"`
	From                string `json:"from"`
	MostRecentCreatedAt int64  `json:"mostRecentCreatedAt"`
	RoundID             string `json:"roundId" binding:"required"`
}

// TipsIncludedRequest is the body of the tips-included endpoint
type TipsIncludedRequest struct {
	PublicationsToCheck []PublicationCheck `json:"publicationsToCheck" binding:"required"`
}

// FromMatchResult maps a recompute outcome to the wire shape
func FromMatchResult(result *recompute.MatchResult) MatchData {
	matches := make([]ProjectMatch, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, FromSchemaProjectMatch(m))
	}
	return MatchData{
		Persisted: result.Persisted,
		Saturated: result.Saturated,
		Matches:   matches,
	}
}

// FromSchemaProjectMatch maps a stored project match to the wire shape
func FromSchemaProjectMatch(m *schema.ProjectMatch) ProjectMatch {
	return ProjectMatch{
		ChainID:                   m.ChainID,
		RoundID:                   m.RoundID,
		ProjectID:                 m.ProjectID,
		ProjectPayoutAddress:      m.ProjectPayoutAddress,
		MatchAmountInUSD:          m.MatchAmountInUSD,
		MatchPoolPercentage:       m.MatchPoolPercentage,
		MatchAmountInToken:        m.MatchAmountInToken,
		MatchAmount:               m.MatchAmount,
		TotalContributionsInUSD:   m.TotalContributionsInUSD,
		TotalContributionsInToken: m.TotalContributionsInToken,
		UniqueContributorsCount:   m.UniqueContributorsCount,
	}
}

// FromSummaryResult maps a summary recompute outcome to the wire shape
func FromSummaryResult(result *recompute.SummaryResult) SummaryData {
	data := SummaryData{Persisted: result.Persisted}
	if result.Summary != nil {
		data.Summary = &RoundSummary{
			ChainID:                 result.Summary.ChainID,
			RoundID:                 result.Summary.RoundID,
			ContributionCount:       result.Summary.ContributionCount,
			UniqueContributors:      result.Summary.UniqueContributors,
			TotalContributionsInUSD: result.Summary.TotalContributionsInUSD,
			AverageUSDContribution:  result.Summary.AverageUSDContribution,
			TotalTippedInToken:      result.Summary.TotalTippedInToken,
			AverageTipInToken:       result.Summary.AverageTipInToken,
		}
	}
	return data
}
