// Package recompute orchestrates one full refresh of a round: pull the
// contribution feed and round metadata, price every token, run the matching
// engine and persist the resulting distribution. Persistence failures
// degrade to an in-memory result rather than failing the round.
package recompute

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/matching"
	"github.com/roundlabs/quadmatch/internal/messaging"
	"github.com/roundlabs/quadmatch/internal/providers/graph"
	"github.com/roundlabs/quadmatch/internal/providers/pricing"
	"github.com/roundlabs/quadmatch/internal/store"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

// MatchResult is the outcome of one match recompute. Persisted reports
// whether the rows were read back from the database; when false the matches
// were computed in memory because a write or read-back failed.
type MatchResult struct {
	Persisted bool
	Saturated bool
	Matches   []*schema.ProjectMatch
}

// SummaryResult is the outcome of one summary recompute
type SummaryResult struct {
	Persisted bool
	Summary   *schema.RoundSummary
}

// PreviewInput describes a hypothetical tip to evaluate against a round
type PreviewInput struct {
	ChainID     domain.ChainID
	RoundID     string
	ProjectID   string
	Contributor string
	Token       string
	// TipAmount is the hypothetical tip in raw token units
	TipAmount *big.Int
}

// Preview quantifies how a hypothetical tip would move a project's match.
// Differences are clamped at zero: a tip never shows as shrinking the match.
type Preview struct {
	CurrentMatchAmountInToken     float64        `json:"currentMatchAmountInToken"`
	NewMatchAmountInToken         float64        `json:"newMatchAmountInToken"`
	DifferenceMatchAmountInToken  float64        `json:"differenceMatchAmountInToken"`
	DifferenceMatchPoolPercentage float64        `json:"differenceMatchPoolPercentage"`
	Token                         string         `json:"token"`
	Contributor                   string         `json:"contributor"`
	ProjectID                     string         `json:"projectId"`
	RoundID                       string         `json:"roundId"`
	ChainID                       domain.ChainID `json:"chainId"`
}

// Recomputer recomputes and persists round state
//
//go:generate mockgen -source=recompute.go -destination=../mocks/recomputer.go -package=mocks -mock_names=Recomputer=MockRecomputer
type Recomputer interface {
	// UpdateRoundMatch recomputes a round's matching distribution and persists it.
	// Rounds with an unsupported voting strategy yield an empty, non-persisted result.
	UpdateRoundMatch(ctx context.Context, chainID domain.ChainID, roundID string) (*MatchResult, error)
	// UpdateRoundSummary recomputes a round's aggregate statistics and persists them.
	// Unlike the match path, an unsupported voting strategy is a hard error.
	UpdateRoundSummary(ctx context.Context, chainID domain.ChainID, roundID string) (*SummaryResult, error)
	// PreviewMatch evaluates how a hypothetical tip would change a project's match
	// without persisting anything
	PreviewMatch(ctx context.Context, input PreviewInput) (*Preview, error)
}

type engine struct {
	graph     graph.Client
	pricing   pricing.Client
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewEngine creates a Recomputer wired to the contribution feed, the price
// oracle, the database and the event broker
func NewEngine(
	graphClient graph.Client,
	pricingClient pricing.Client,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Recomputer {
	return &engine{
		graph:     graphClient,
		pricing:   pricingClient,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
}

// UpdateRoundMatch recomputes a round's matching distribution and persists it
func (e *engine) UpdateRoundMatch(ctx context.Context, chainID domain.ChainID, roundID string) (*MatchResult, error) {
	roundID = strings.ToLower(roundID)

	metadata, err := e.graph.FetchRoundMetadata(ctx, chainID, roundID)
	if err != nil {
		return nil, err
	}

	strategy, ok := domain.ParseVotingStrategy(string(metadata.VotingStrategy.StrategyName))
	if !ok {
		logger.WarnCtx(ctx, "Round uses an unsupported voting strategy, skipping match recompute",
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID),
			zap.String("strategy", string(metadata.VotingStrategy.StrategyName)))
		return &MatchResult{Matches: []*schema.ProjectMatch{}}, nil
	}

	contributions, err := e.graph.FetchContributionsForRound(ctx, chainID, roundID)
	if err != nil {
		return nil, err
	}

	prices, potPrice, err := e.roundWindowPrices(ctx, chainID, metadata, contributions)
	if err != nil {
		return nil, err
	}

	var matches []matching.ProjectMatch
	var saturated bool
	switch strategy {
	case domain.VotingStrategyLinearQuadraticFunding:
		matches, saturated = matching.Match(*metadata, contributions, prices, potPrice)
	}

	rows := make([]*schema.ProjectMatch, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, &schema.ProjectMatch{
			ChainID:                   string(chainID),
			RoundID:                   roundID,
			ProjectID:                 m.ProjectID,
			ProjectPayoutAddress:      m.ProjectPayoutAddress,
			MatchAmountInUSD:          m.MatchAmountInUSD,
			MatchPoolPercentage:       m.MatchPoolPercentage,
			MatchAmountInToken:        m.MatchAmountInToken,
			MatchAmount:               m.MatchAmount,
			TotalContributionsInUSD:   m.TotalContributionsInUSD,
			TotalContributionsInToken: m.TotalContributionsInToken,
			UniqueContributorsCount:   m.UniqueContributorsCount,
		})
	}

	strategyJSON, _ := json.Marshal(metadata.VotingStrategy)
	round := &schema.Round{
		ChainID:               string(chainID),
		RoundID:               roundID,
		Token:                 domain.NormalizeAddress(metadata.Token),
		VotingStrategyName:    string(metadata.VotingStrategy.StrategyName),
		VotingStrategy:        datatypes.JSON(strategyJSON),
		MatchAmount:           domain.ToWei(metadata.TotalPot).String(),
		TotalPotInUSD:         metadata.TotalPot * potPrice,
		MatchingCapPercentage: metadata.MatchingCapPercentage,
		IsSaturated:           saturated,
		RoundStartTime:        metadata.RoundStartTime,
		RoundEndTime:          metadata.RoundEndTime,
	}

	result := &MatchResult{Saturated: saturated, Matches: rows}
	if err := e.persistMatches(ctx, chainID, roundID, round, rows, newestTips(chainID, roundID, contributions)); err != nil {
		// The computed distribution is still served; only durability is lost.
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist match recompute, serving in-memory result: %w", err),
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID))
	} else {
		stored, err := e.store.GetProjectMatches(ctx, chainID, roundID)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to read back persisted matches, serving in-memory result: %w", err),
				zap.String("chain_id", string(chainID)),
				zap.String("round_id", roundID))
		} else {
			result.Persisted = true
			result.Matches = stored
		}
	}

	e.announce(ctx, chainID, roundID, result)

	return result, nil
}

// UpdateRoundSummary recomputes a round's aggregate statistics and persists them
func (e *engine) UpdateRoundSummary(ctx context.Context, chainID domain.ChainID, roundID string) (*SummaryResult, error) {
	roundID = strings.ToLower(roundID)

	metadata, err := e.graph.FetchRoundMetadata(ctx, chainID, roundID)
	if err != nil {
		return nil, err
	}

	if _, ok := domain.ParseVotingStrategy(string(metadata.VotingStrategy.StrategyName)); !ok {
		return nil, domain.ErrUnsupportedVotingStrategy
	}

	contributions, err := e.graph.FetchContributionsForRound(ctx, chainID, roundID)
	if err != nil {
		return nil, err
	}

	// Summaries are a live view, so they price at current rates rather than
	// the round-window average the match path uses.
	currentPrices, err := e.pricing.FetchCurrentTokenPrices(ctx, chainID, contributionTokens(metadata, contributions))
	if err != nil {
		return nil, err
	}

	summary := matching.Summarize(contributions, matching.Prices(currentPrices))
	row := &schema.RoundSummary{
		ChainID:                 string(chainID),
		RoundID:                 roundID,
		ContributionCount:       summary.ContributionCount,
		UniqueContributors:      summary.UniqueContributors,
		TotalContributionsInUSD: summary.TotalContributionsInUSD,
		AverageUSDContribution:  summary.AverageUSDContribution,
		TotalTippedInToken:      summary.TotalTippedInToken,
		AverageTipInToken:       summary.AverageTipInToken,
	}

	result := &SummaryResult{Summary: row}
	if err := e.store.UpsertRoundSummary(ctx, row); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist round summary, serving in-memory result: %w", err),
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID))
		return result, nil
	}

	stored, err := e.store.GetRoundSummary(ctx, chainID, roundID)
	if err != nil || stored == nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to read back persisted round summary, serving in-memory result: %w", err),
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID))
		return result, nil
	}

	result.Persisted = true
	result.Summary = stored

	return result, nil
}

// PreviewMatch evaluates how a hypothetical tip would change a project's match
func (e *engine) PreviewMatch(ctx context.Context, input PreviewInput) (*Preview, error) {
	roundID := strings.ToLower(input.RoundID)

	metadata, err := e.graph.FetchRoundMetadata(ctx, input.ChainID, roundID)
	if err != nil {
		return nil, err
	}

	contributions, err := e.graph.FetchContributionsForRound(ctx, input.ChainID, roundID)
	if err != nil {
		return nil, err
	}

	currentMatchInToken := 0.0
	currentPercentage := 0.0
	payoutAddress := ""
	current, err := e.store.GetProjectMatchesByProjectIDs(ctx, input.ChainID, roundID, []string{input.ProjectID})
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		currentMatchInToken = current[0].MatchAmountInToken
		currentPercentage = current[0].MatchPoolPercentage
		payoutAddress = current[0].ProjectPayoutAddress
	}

	synthetic := domain.Contribution{
		Contributor:          input.Contributor,
		Token:                input.Token,
		Amount:               input.TipAmount,
		ProjectID:            input.ProjectID,
		ProjectPayoutAddress: payoutAddress,
		CreatedAt:            e.clock.Now().Unix(),
	}
	hypothetical := append(append([]domain.Contribution{}, contributions...), synthetic)

	prices, potPrice, err := e.roundWindowPrices(ctx, input.ChainID, metadata, hypothetical)
	if err != nil {
		return nil, err
	}

	matches, _ := matching.Match(*metadata, hypothetical, prices, potPrice)

	newMatchInToken := 0.0
	newPercentage := 0.0
	for _, m := range matches {
		if m.ProjectID == input.ProjectID {
			newMatchInToken = m.MatchAmountInToken
			newPercentage = m.MatchPoolPercentage
			break
		}
	}

	return &Preview{
		CurrentMatchAmountInToken:     currentMatchInToken,
		NewMatchAmountInToken:         newMatchInToken,
		DifferenceMatchAmountInToken:  math.Max(0, newMatchInToken-currentMatchInToken),
		DifferenceMatchPoolPercentage: math.Max(0, newPercentage-currentPercentage),
		Token:                         input.Token,
		Contributor:                   input.Contributor,
		ProjectID:                     input.ProjectID,
		RoundID:                       roundID,
		ChainID:                       input.ChainID,
	}, nil
}

// persistMatches writes the round record, its match rows and the newest-tip
// watermarks. The first failure aborts so the caller can fall back.
func (e *engine) persistMatches(
	ctx context.Context,
	chainID domain.ChainID,
	roundID string,
	round *schema.Round,
	rows []*schema.ProjectMatch,
	tips []*schema.MostRecentTip,
) error {
	if err := e.store.UpsertRound(ctx, round); err != nil {
		return err
	}
	if err := e.store.ReplaceProjectMatches(ctx, chainID, roundID, rows); err != nil {
		return err
	}
	return e.store.UpsertMostRecentTips(ctx, tips)
}

// announce publishes the recompute event; failures are logged, never fatal
func (e *engine) announce(ctx context.Context, chainID domain.ChainID, roundID string, result *MatchResult) {
	event := &domain.RoundMatchUpdatedEvent{
		ChainID:      chainID,
		RoundID:      roundID,
		ProjectCount: len(result.Matches),
		IsSaturated:  result.Saturated,
		Persisted:    result.Persisted,
		RecomputedAt: e.clock.Now().Unix(),
	}

	if err := e.publisher.PublishRoundMatchUpdated(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish round match updated event",
			zap.String("chain_id", string(chainID)),
			zap.String("round_id", roundID),
			zap.Error(err))
	}
}

// roundWindowPrices fetches average USD prices over the round window for
// every token the contributions use plus the pot token, returning the pot
// token's price separately
func (e *engine) roundWindowPrices(
	ctx context.Context,
	chainID domain.ChainID,
	metadata *domain.RoundMetadata,
	contributions []domain.Contribution,
) (matching.Prices, float64, error) {
	tokens := contributionTokens(metadata, contributions)

	prices, err := e.pricing.FetchAverageTokenPrices(ctx, chainID, tokens, metadata.RoundStartTime, metadata.RoundEndTime)
	if err != nil {
		return nil, 0, err
	}

	return matching.Prices(prices), prices[domain.NormalizeAddress(metadata.Token)], nil
}

// contributionTokens collects the distinct token addresses used by the
// contributions plus the pot token, preserving first-seen order
func contributionTokens(metadata *domain.RoundMetadata, contributions []domain.Contribution) []string {
	seen := map[string]bool{}
	tokens := make([]string, 0, 4)

	add := func(token string) {
		normalized := domain.NormalizeAddress(token)
		if normalized == "" || seen[normalized] {
			return
		}
		seen[normalized] = true
		tokens = append(tokens, normalized)
	}

	add(metadata.Token)
	for _, contribution := range contributions {
		add(contribution.Token)
	}

	return tokens
}

// newestTips reduces the contributions to the newest tip per project
func newestTips(chainID domain.ChainID, roundID string, contributions []domain.Contribution) []*schema.MostRecentTip {
	order := make([]string, 0)
	newest := map[string]*schema.MostRecentTip{}

	for _, contribution := range contributions {
		tip, ok := newest[contribution.ProjectID]
		if !ok {
			newest[contribution.ProjectID] = &schema.MostRecentTip{
				ChainID:   string(chainID),
				RoundID:   roundID,
				ProjectID: contribution.ProjectID,
				UserID:    contribution.Contributor,
				Timestamp: contribution.CreatedAt,
			}
			order = append(order, contribution.ProjectID)
			continue
		}

		if contribution.CreatedAt > tip.Timestamp {
			tip.Timestamp = contribution.CreatedAt
			tip.UserID = contribution.Contributor
		}
	}

	tips := make([]*schema.MostRecentTip, 0, len(order))
	for _, projectID := range order {
		tips = append(tips, newest[projectID])
	}

	return tips
}
