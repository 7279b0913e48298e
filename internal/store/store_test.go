package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

const (
	testChain   = domain.ChainMumbai
	testRoundID = "0x1998f51a3de24f2a9b9a2292a351ec334150e81a"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestRound creates a round record with a 100-token pot
func buildTestRound(roundID string) *schema.Round {
	return &schema.Round{
		ChainID:               string(testChain),
		RoundID:               roundID,
		Token:                 "0x9c3c9283d3e44854697cd22d3faa240cfb032889",
		VotingStrategyName:    string(domain.VotingStrategyLinearQuadraticFunding),
		MatchAmount:           "100000000000000000000",
		TotalPotInUSD:         75.5,
		MatchingCapPercentage: 0,
		IsSaturated:           false,
		RoundStartTime:        1690000000,
		RoundEndTime:          1700000000,
	}
}

// buildTestProjectMatch creates a match row for one project
func buildTestProjectMatch(roundID, projectID string, matchInUSD float64) *schema.ProjectMatch {
	return &schema.ProjectMatch{
		ChainID:                   string(testChain),
		RoundID:                   roundID,
		ProjectID:                 projectID,
		ProjectPayoutAddress:      "0x3f15b8c6f9939879cb030d6dd935348e57109637",
		MatchAmountInUSD:          matchInUSD,
		MatchPoolPercentage:       matchInUSD / 100,
		MatchAmountInToken:        matchInUSD * 2,
		MatchAmount:               fmt.Sprintf("%.0f", matchInUSD*2e18),
		TotalContributionsInUSD:   matchInUSD / 3,
		TotalContributionsInToken: matchInUSD / 2,
		UniqueContributorsCount:   4,
	}
}

// buildTestTip creates a newest-tip watermark row
func buildTestTip(roundID, projectID, userID string, timestamp int64) *schema.MostRecentTip {
	return &schema.MostRecentTip{
		ChainID:   string(testChain),
		RoundID:   roundID,
		ProjectID: projectID,
		UserID:    userID,
		Timestamp: timestamp,
	}
}

// =============================================================================
// Test Suite
// =============================================================================

// RunStoreTests runs the full store test suite against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	t.Run("UpsertRound", func(t *testing.T) {
		defer cleanupDB(t)
		testUpsertRound(t, initDB(t))
	})
	t.Run("GetRoundNotFound", func(t *testing.T) {
		defer cleanupDB(t)
		testGetRoundNotFound(t, initDB(t))
	})
	t.Run("ReplaceProjectMatches", func(t *testing.T) {
		defer cleanupDB(t)
		testReplaceProjectMatches(t, initDB(t))
	})
	t.Run("GetProjectMatchesByProjectIDs", func(t *testing.T) {
		defer cleanupDB(t)
		testGetProjectMatchesByProjectIDs(t, initDB(t))
	})
	t.Run("MostRecentTipWatermark", func(t *testing.T) {
		defer cleanupDB(t)
		testMostRecentTipWatermark(t, initDB(t))
	})
	t.Run("RoundSummary", func(t *testing.T) {
		defer cleanupDB(t)
		testRoundSummary(t, initDB(t))
	})
}

func testUpsertRound(t *testing.T, s Store) {
	ctx := context.Background()

	round := buildTestRound(testRoundID)
	require.NoError(t, s.UpsertRound(ctx, round))

	stored, err := s.GetRound(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "100000000000000000000", stored.MatchAmount)
	assert.Equal(t, 75.5, stored.TotalPotInUSD)
	assert.False(t, stored.IsSaturated)

	// A recompute with fresher data updates the same row
	updated := buildTestRound(testRoundID)
	updated.TotalPotInUSD = 120
	updated.IsSaturated = true
	updated.MatchingCapPercentage = 25
	require.NoError(t, s.UpsertRound(ctx, updated))

	stored, err = s.GetRound(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 120.0, stored.TotalPotInUSD)
	assert.True(t, stored.IsSaturated)
	assert.Equal(t, 25.0, stored.MatchingCapPercentage)
}

func testGetRoundNotFound(t *testing.T, s Store) {
	ctx := context.Background()

	round, err := s.GetRound(ctx, testChain, "0xunknown")
	require.NoError(t, err)
	assert.Nil(t, round)
}

func testReplaceProjectMatches(t *testing.T, s Store) {
	ctx := context.Background()

	first := []*schema.ProjectMatch{
		buildTestProjectMatch(testRoundID, "0x2d-0x01", 60),
		buildTestProjectMatch(testRoundID, "0x2d-0x02", 30),
		buildTestProjectMatch(testRoundID, "0x2d-0x03", 10),
	}
	require.NoError(t, s.ReplaceProjectMatches(ctx, testChain, testRoundID, first))

	stored, err := s.GetProjectMatches(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "0x2d-0x01", stored[0].ProjectID)
	assert.Equal(t, 60.0, stored[0].MatchAmountInUSD)

	// The next recompute drops one project and changes another
	second := []*schema.ProjectMatch{
		buildTestProjectMatch(testRoundID, "0x2d-0x01", 80),
		buildTestProjectMatch(testRoundID, "0x2d-0x02", 20),
	}
	require.NoError(t, s.ReplaceProjectMatches(ctx, testChain, testRoundID, second))

	stored, err = s.GetProjectMatches(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 80.0, stored[0].MatchAmountInUSD)
	assert.Equal(t, 20.0, stored[1].MatchAmountInUSD)

	// An empty distribution clears the round's rows
	require.NoError(t, s.ReplaceProjectMatches(ctx, testChain, testRoundID, nil))

	stored, err = s.GetProjectMatches(ctx, testChain, testRoundID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func testGetProjectMatchesByProjectIDs(t *testing.T, s Store) {
	ctx := context.Background()

	matches := []*schema.ProjectMatch{
		buildTestProjectMatch(testRoundID, "0x2d-0x01", 60),
		buildTestProjectMatch(testRoundID, "0x2d-0x02", 30),
		buildTestProjectMatch(testRoundID, "0x2d-0x03", 10),
	}
	require.NoError(t, s.ReplaceProjectMatches(ctx, testChain, testRoundID, matches))

	subset, err := s.GetProjectMatchesByProjectIDs(ctx, testChain, testRoundID, []string{"0x2d-0x01", "0x2d-0x03"})
	require.NoError(t, err)
	require.Len(t, subset, 2)
	assert.Equal(t, "0x2d-0x01", subset[0].ProjectID)
	assert.Equal(t, "0x2d-0x03", subset[1].ProjectID)

	empty, err := s.GetProjectMatchesByProjectIDs(ctx, testChain, testRoundID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testMostRecentTipWatermark(t *testing.T, s Store) {
	ctx := context.Background()

	alice := "0xa1ce000000000000000000000000000000000001"
	bob := "0xb0b0000000000000000000000000000000000002"

	require.NoError(t, s.UpsertMostRecentTips(ctx, []*schema.MostRecentTip{
		buildTestTip(testRoundID, "0x2d-0x01", alice, 100),
	}))

	tip, err := s.GetMostRecentTip(ctx, testChain, testRoundID, "0x2d-0x01")
	require.NoError(t, err)
	require.NotNil(t, tip)
	assert.Equal(t, int64(100), tip.Timestamp)
	assert.Equal(t, alice, tip.UserID)

	// An older recompute result never rolls the watermark back
	require.NoError(t, s.UpsertMostRecentTips(ctx, []*schema.MostRecentTip{
		buildTestTip(testRoundID, "0x2d-0x01", bob, 50),
	}))

	tip, err = s.GetMostRecentTip(ctx, testChain, testRoundID, "0x2d-0x01")
	require.NoError(t, err)
	require.NotNil(t, tip)
	assert.Equal(t, int64(100), tip.Timestamp)
	assert.Equal(t, alice, tip.UserID)

	// A newer tip advances the watermark and its contributor
	require.NoError(t, s.UpsertMostRecentTips(ctx, []*schema.MostRecentTip{
		buildTestTip(testRoundID, "0x2d-0x01", bob, 200),
	}))

	tip, err = s.GetMostRecentTip(ctx, testChain, testRoundID, "0x2d-0x01")
	require.NoError(t, err)
	require.NotNil(t, tip)
	assert.Equal(t, int64(200), tip.Timestamp)
	assert.Equal(t, bob, tip.UserID)

	missing, err := s.GetMostRecentTip(ctx, testChain, testRoundID, "0x2d-0xff")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testRoundSummary(t *testing.T, s Store) {
	ctx := context.Background()

	summary := &schema.RoundSummary{
		ChainID:                 string(testChain),
		RoundID:                 testRoundID,
		ContributionCount:       12,
		UniqueContributors:      7,
		TotalContributionsInUSD: 42.5,
		AverageUSDContribution:  42.5 / 7,
		TotalTippedInToken:      85,
		AverageTipInToken:       85.0 / 12,
	}
	require.NoError(t, s.UpsertRoundSummary(ctx, summary))

	stored, err := s.GetRoundSummary(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 12, stored.ContributionCount)
	assert.Equal(t, 7, stored.UniqueContributors)
	assert.Equal(t, 42.5, stored.TotalContributionsInUSD)

	// Recomputing overwrites the aggregates in place
	summary = &schema.RoundSummary{
		ChainID:                 string(testChain),
		RoundID:                 testRoundID,
		ContributionCount:       13,
		UniqueContributors:      8,
		TotalContributionsInUSD: 50,
		AverageUSDContribution:  6.25,
		TotalTippedInToken:      100,
		AverageTipInToken:       100.0 / 13,
	}
	require.NoError(t, s.UpsertRoundSummary(ctx, summary))

	stored, err = s.GetRoundSummary(ctx, testChain, testRoundID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 13, stored.ContributionCount)
	assert.Equal(t, 50.0, stored.TotalContributionsInUSD)

	missing, err := s.GetRoundSummary(ctx, testChain, "0xother")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
