// Package graph queries the round subgraphs that index on-chain voting
// events. One client serves every configured chain; the endpoint is
// selected per request by chain id.
package graph

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/ratelimit"
)

// contributionsPageSize is the subgraph's maximum page size
const contributionsPageSize = 1000

// ProviderName is the rate limiter provider key for subgraph requests
const ProviderName = "indexer"

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string      `json:"query"`
	Variables     interface{} `json:"variables"`
	OperationName string      `json:"operationName"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Vote is a raw voting event as indexed by the subgraph. Numeric fields
// arrive as decimal strings.
type Vote struct {
	ID        string `json:"id"`
	Amount    string `json:"amount"`
	From      string `json:"from"`
	To        string `json:"to"`
	ProjectID string `json:"projectId"`
	Token     string `json:"token"`
	CreatedAt string `json:"createdAt"`
}

// ActiveRound identifies a round that has not ended yet
type ActiveRound struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	RoundEndTime string `json:"roundEndTime"`
}

type contributionsResponse struct {
	Data struct {
		QuadraticTipping *struct {
			Votes []Vote `json:"votes"`
		} `json:"quadraticTipping"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type roundMetadataResponse struct {
	Data struct {
		Rounds []struct {
			ID                    string `json:"id"`
			Token                 string `json:"token"`
			RoundStartTime        string `json:"roundStartTime"`
			RoundEndTime          string `json:"roundEndTime"`
			MatchAmount           string `json:"matchAmount"`
			MatchingCapPercentage string `json:"matchingCapPercentage"`
			VotingStrategy        struct {
				ID           string `json:"id"`
				StrategyName string `json:"strategyName"`
			} `json:"votingStrategy"`
		} `json:"rounds"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type activeRoundsResponse struct {
	Data struct {
		Rounds []ActiveRound `json:"rounds"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client defines the interface for subgraph client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/graph_client.go -package=mocks -mock_names=Client=MockGraphClient
type Client interface {
	// FetchContributionsForRound pages through every vote cast in the
	// round and returns them decoded into contributions
	FetchContributionsForRound(ctx context.Context, chainID domain.ChainID, roundID string) ([]domain.Contribution, error)

	// FetchRoundMetadata fetches a round's configuration
	FetchRoundMetadata(ctx context.Context, chainID domain.ChainID, roundID string) (*domain.RoundMetadata, error)

	// FetchActiveRounds lists rounds whose end time is at least an hour away
	FetchActiveRounds(ctx context.Context, chainID domain.ChainID) ([]ActiveRound, error)
}

// GraphClient implements Client over the per-chain subgraph endpoints
type GraphClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock
	limiter    ratelimit.Proxy
	endpoints  map[string]string
}

// NewClient creates a new subgraph client. endpoints maps chain ids to
// subgraph URLs; limiter may be nil to disable rate limiting.
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, clock adapter.Clock, limiter ratelimit.Proxy, endpoints map[string]string) Client {
	return &GraphClient{
		httpClient: httpClient,
		json:       json,
		clock:      clock,
		limiter:    limiter,
		endpoints:  endpoints,
	}
}

// FetchContributionsForRound pages through the round's votes in creation
// order, passing the last seen timestamp as a strictly-greater cursor so
// no vote is dropped or fetched twice. A page shorter than the page size
// terminates the walk. Votes whose project id cannot be decoded are
// skipped; transport and query errors abort the whole fetch.
func (c *GraphClient) FetchContributionsForRound(ctx context.Context, chainID domain.ChainID, roundID string) ([]domain.Contribution, error) {
	roundID = strings.ToLower(roundID)

	query := `query GetContributionsForRound($roundId: String, $lastCreatedAt: String) {
  quadraticTipping(id: $roundId) {
    votes(
      first: 1000
      orderBy: createdAt
      orderDirection: asc
      where: {createdAt_gt: $lastCreatedAt}
    ) {
      id
      amount
      from
      to
      projectId
      token
      createdAt
    }
  }
}`

	contributions := []domain.Contribution{}
	lastCreatedAt := "0"

	for {
		request := GraphQLRequest{
			Query: query,
			Variables: map[string]string{
				"roundId":       roundID,
				"lastCreatedAt": lastCreatedAt,
			},
			OperationName: "GetContributionsForRound",
		}

		var response contributionsResponse
		if err := c.post(ctx, chainID, request, &response); err != nil {
			return nil, err
		}
		if len(response.Errors) > 0 {
			return nil, fmt.Errorf("contributions query failed: %s", response.Errors[0].Message)
		}

		if response.Data.QuadraticTipping == nil {
			return contributions, nil
		}

		votes := response.Data.QuadraticTipping.Votes
		for _, vote := range votes {
			projectID := domain.DecodePublicationID(vote.ProjectID)
			if projectID == "" {
				continue
			}

			amount, ok := new(big.Int).SetString(vote.Amount, 10)
			if !ok {
				continue
			}

			createdAt, _ := strconv.ParseInt(vote.CreatedAt, 10, 64)

			contributions = append(contributions, domain.Contribution{
				Contributor:          vote.From,
				Token:                vote.Token,
				Amount:               amount,
				ProjectID:            projectID,
				ProjectPayoutAddress: vote.To,
				CreatedAt:            createdAt,
			})

			lastCreatedAt = vote.CreatedAt
		}

		if len(votes) < contributionsPageSize {
			return contributions, nil
		}
	}
}

// FetchRoundMetadata fetches a round's configuration from the subgraph
func (c *GraphClient) FetchRoundMetadata(ctx context.Context, chainID domain.ChainID, roundID string) (*domain.RoundMetadata, error) {
	roundID = strings.ToLower(roundID)

	query := `query GetRoundMetadata($roundId: String) {
  rounds(where: {id: $roundId}) {
    id
    token
    roundStartTime
    roundEndTime
    matchAmount
    matchingCapPercentage
    votingStrategy {
      id
      strategyName
    }
  }
}`

	request := GraphQLRequest{
		Query:         query,
		Variables:     map[string]string{"roundId": roundID},
		OperationName: "GetRoundMetadata",
	}

	var response roundMetadataResponse
	if err := c.post(ctx, chainID, request, &response); err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("round metadata query failed: %s", response.Errors[0].Message)
	}
	if len(response.Data.Rounds) == 0 {
		return nil, domain.ErrRoundNotFound
	}

	round := response.Data.Rounds[0]

	matchAmount, ok := new(big.Int).SetString(round.MatchAmount, 10)
	if !ok {
		return nil, fmt.Errorf("round %s: invalid match amount %q", roundID, round.MatchAmount)
	}

	startTime, _ := strconv.ParseInt(round.RoundStartTime, 10, 64)
	endTime, _ := strconv.ParseInt(round.RoundEndTime, 10, 64)

	capPercentage := 0.0
	if round.MatchingCapPercentage != "" {
		capPercentage, _ = strconv.ParseFloat(round.MatchingCapPercentage, 64)
	}

	return &domain.RoundMetadata{
		TotalPot:              domain.FromWei(matchAmount),
		Token:                 round.Token,
		RoundStartTime:        startTime,
		RoundEndTime:          endTime,
		MatchingCapPercentage: capPercentage,
		VotingStrategy: domain.VotingStrategyInfo{
			ID:           round.VotingStrategy.ID,
			StrategyName: domain.VotingStrategy(round.VotingStrategy.StrategyName),
		},
	}, nil
}

// FetchActiveRounds lists rounds still accepting contributions. Rounds
// ending within the next hour are excluded so a recompute never races
// the round's close.
func (c *GraphClient) FetchActiveRounds(ctx context.Context, chainID domain.ChainID) ([]ActiveRound, error) {
	query := `query GetActiveRounds($unixTimestamp: String!) {
  rounds(
    where: {roundEndTime_gte: $unixTimestamp}
    orderBy: createdAt
    orderDirection: desc
  ) {
    id
    token
    roundEndTime
  }
}`

	cutoff := c.clock.Now().Unix() + 60*60

	request := GraphQLRequest{
		Query:         query,
		Variables:     map[string]string{"unixTimestamp": strconv.FormatInt(cutoff, 10)},
		OperationName: "GetActiveRounds",
	}

	var response activeRoundsResponse
	if err := c.post(ctx, chainID, request, &response); err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("active rounds query failed: %s", response.Errors[0].Message)
	}

	return response.Data.Rounds, nil
}

// post executes a GraphQL request against the chain's subgraph endpoint
// through the rate limiter
func (c *GraphClient) post(ctx context.Context, chainID domain.ChainID, request GraphQLRequest, response interface{}) error {
	endpoint, ok := c.endpoints[string(chainID)]
	if !ok {
		return fmt.Errorf("no subgraph endpoint configured for chain %s", chainID)
	}

	requestBody, err := c.json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	responseBody, err := ratelimit.Request(ctx, c.limiter, ProviderName, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, endpoint, "application/json", bytes.NewReader(requestBody))
	})
	if err != nil {
		return fmt.Errorf("failed to call subgraph: %w", err)
	}

	if err := c.json.Unmarshal(responseBody, response); err != nil {
		return fmt.Errorf("failed to unmarshal subgraph response: %w", err)
	}

	return nil
}
