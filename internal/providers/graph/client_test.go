package graph_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/mocks"
	"github.com/roundlabs/quadmatch/internal/providers/graph"
)

const (
	subgraphURL = "https://api.thegraph.com/subgraphs/name/test/rounds"
	testChain   = domain.ChainMumbai
	testRoundID = "0xround"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// encodedProjectID builds a well-formed on-chain project identifier whose
// halves decode to "0x2d" and the given post id
func encodedProjectID(post string) string {
	profileHalf := "2d1" + strings.Repeat("0", 29)
	postHalf := post + "1" + strings.Repeat("0", 31-len(post))
	return "0x" + profileHalf + postHalf
}

type graphMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	clock      *mocks.MockClock
	proxy      *mocks.MockRateLimitProxy
}

func setupGraphClient(t *testing.T) (*graphMocks, graph.Client) {
	ctrl := gomock.NewController(t)

	gm := &graphMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
		clock:      mocks.NewMockClock(ctrl),
		proxy:      mocks.NewMockRateLimitProxy(ctrl),
	}

	// Pass requests straight through the rate limiter
	gm.proxy.EXPECT().
		Request(gomock.Any(), graph.ProviderName, gomock.Any()).
		DoAndReturn(func(ctx context.Context, providerName string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
			return fn(ctx)
		}).
		AnyTimes()

	endpoints := map[string]string{string(testChain): subgraphURL}
	client := graph.NewClient(gm.httpClient, adapter.NewJSON(), gm.clock, gm.proxy, endpoints)

	return gm, client
}

// requestVariables extracts the GraphQL variables from a request body
func requestVariables(t *testing.T, body io.Reader) map[string]string {
	t.Helper()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var request struct {
		Variables map[string]string `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(raw, &request))
	return request.Variables
}

func votesPage(votes []map[string]string) []byte {
	page, _ := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{
			"quadraticTipping": map[string]interface{}{
				"votes": votes,
			},
		},
	})
	return page
}

func TestFetchContributionsForRound_Pagination(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	// 2500 votes with createdAt 1..2500 serve as three pages of
	// 1000/1000/500; the cursor must walk them without gaps or repeats
	const totalVotes = 2500

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
			variables := requestVariables(t, body)
			cursor, err := strconv.Atoi(variables["lastCreatedAt"])
			require.NoError(t, err)

			votes := []map[string]string{}
			for createdAt := cursor + 1; createdAt <= totalVotes && len(votes) < 1000; createdAt++ {
				votes = append(votes, map[string]string{
					"id":        fmt.Sprintf("vote-%d", createdAt),
					"amount":    "1000000000000000000",
					"from":      "0xcontributor",
					"to":        "0xpayout",
					"projectId": encodedProjectID("0ab"),
					"token":     "0xtoken",
					"createdAt": strconv.Itoa(createdAt),
				})
			}
			return votesPage(votes), nil
		}).
		Times(3)

	contributions, err := client.FetchContributionsForRound(context.Background(), testChain, testRoundID)

	require.NoError(t, err)
	require.Len(t, contributions, totalVotes)

	seen := make(map[int64]bool)
	for _, contribution := range contributions {
		assert.False(t, seen[contribution.CreatedAt], "duplicate vote at %d", contribution.CreatedAt)
		seen[contribution.CreatedAt] = true
		assert.Equal(t, "0x2d-0x0ab", contribution.ProjectID)
	}
	assert.Equal(t, int64(1), contributions[0].CreatedAt)
	assert.Equal(t, int64(totalVotes), contributions[totalVotes-1].CreatedAt)
}

func TestFetchContributionsForRound_SkipsMalformedVotes(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	votes := []map[string]string{
		{
			"id":        "vote-1",
			"amount":    "500",
			"from":      "0xgood",
			"to":        "0xpayout",
			"projectId": encodedProjectID("0ab"),
			"token":     "0xtoken",
			"createdAt": "10",
		},
		{
			// undecodable project id, fails closed
			"id":        "vote-2",
			"amount":    "500",
			"from":      "0xbadproject",
			"to":        "0xpayout",
			"projectId": "0xdeadbeef",
			"token":     "0xtoken",
			"createdAt": "11",
		},
		{
			// non-numeric amount
			"id":        "vote-3",
			"amount":    "not-a-number",
			"from":      "0xbadamount",
			"to":        "0xpayout",
			"projectId": encodedProjectID("0ab"),
			"token":     "0xtoken",
			"createdAt": "12",
		},
	}

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		Return(votesPage(votes), nil)

	contributions, err := client.FetchContributionsForRound(context.Background(), testChain, testRoundID)

	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Equal(t, "0xgood", contributions[0].Contributor)
}

func TestFetchContributionsForRound_UnknownRound(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	empty, _ := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"quadraticTipping": nil},
	})

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		Return(empty, nil)

	contributions, err := client.FetchContributionsForRound(context.Background(), testChain, testRoundID)

	require.NoError(t, err)
	assert.Empty(t, contributions)
}

func TestFetchContributionsForRound_TransportError(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		Return(nil, errors.New("connection reset"))

	contributions, err := client.FetchContributionsForRound(context.Background(), testChain, testRoundID)

	assert.Error(t, err)
	assert.Nil(t, contributions)
}

func TestFetchContributionsForRound_GraphQLError(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	failure, _ := json.Marshal(map[string]interface{}{
		"errors": []map[string]string{{"message": "query rejected"}},
	})

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		Return(failure, nil)

	contributions, err := client.FetchContributionsForRound(context.Background(), testChain, testRoundID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query rejected")
	assert.Nil(t, contributions)
}

func TestFetchContributionsForRound_UnconfiguredChain(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	contributions, err := client.FetchContributionsForRound(context.Background(), domain.ChainPolygon, testRoundID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no subgraph endpoint configured")
	assert.Nil(t, contributions)
}

func TestFetchRoundMetadata_Success(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	response, _ := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{
			"rounds": []map[string]interface{}{
				{
					"id":                    testRoundID,
					"token":                 "0xpottoken",
					"roundStartTime":        "1700000000",
					"roundEndTime":          "1700600000",
					"matchAmount":           "100000000000000000000",
					"matchingCapPercentage": "25",
					"votingStrategy": map[string]string{
						"id":           "0xstrategy",
						"strategyName": "LINEAR_QUADRATIC_FUNDING",
					},
				},
			},
		},
	})

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
			variables := requestVariables(t, body)
			// round ids are normalized to lower case before querying
			assert.Equal(t, "0xround", variables["roundId"])
			return response, nil
		})

	metadata, err := client.FetchRoundMetadata(context.Background(), testChain, "0xRound")

	require.NoError(t, err)
	assert.InDelta(t, 100, metadata.TotalPot, 1e-9)
	assert.Equal(t, "0xpottoken", metadata.Token)
	assert.Equal(t, int64(1700000000), metadata.RoundStartTime)
	assert.Equal(t, int64(1700600000), metadata.RoundEndTime)
	assert.InDelta(t, 25, metadata.MatchingCapPercentage, 1e-9)
	assert.Equal(t, domain.VotingStrategyLinearQuadraticFunding, metadata.VotingStrategy.StrategyName)
}

func TestFetchRoundMetadata_NotFound(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	response, _ := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"rounds": []interface{}{}},
	})

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		Return(response, nil)

	metadata, err := client.FetchRoundMetadata(context.Background(), testChain, testRoundID)

	assert.ErrorIs(t, err, domain.ErrRoundNotFound)
	assert.Nil(t, metadata)
}

func TestFetchActiveRounds(t *testing.T) {
	gm, client := setupGraphClient(t)
	defer gm.ctrl.Finish()

	now := time.Unix(1700000000, 0)
	gm.clock.EXPECT().Now().Return(now)

	response, _ := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{
			"rounds": []map[string]string{
				{"id": "0xround1", "token": "0xtoken", "roundEndTime": "1700700000"},
				{"id": "0xround2", "token": "0xtoken", "roundEndTime": "1700800000"},
			},
		},
	})

	gm.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
			variables := requestVariables(t, body)
			// rounds ending within the next hour are excluded
			assert.Equal(t, "1700003600", variables["unixTimestamp"])
			return response, nil
		})

	rounds, err := client.FetchActiveRounds(context.Background(), testChain)

	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "0xround1", rounds[0].ID)
}
