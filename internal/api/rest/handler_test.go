package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/api/middleware"
	"github.com/roundlabs/quadmatch/internal/api/rest/dto"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/mocks"
	"github.com/roundlabs/quadmatch/internal/recompute"
	"github.com/roundlabs/quadmatch/internal/store/schema"
)

const (
	testRoundID = "0x1998f51a3de24f2a9b9a2292a351ec334150e81a"
	testAPIKey  = "test-api-key"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testMocks struct {
	recomputer *mocks.MockRecomputer
	store      *mocks.MockStore
	cache      *mocks.MockRedisClient
}

func setupRouter(t *testing.T) (*gin.Engine, testMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := testMocks{
		recomputer: mocks.NewMockRecomputer(ctrl),
		store:      mocks.NewMockStore(ctrl),
		cache:      mocks.NewMockRedisClient(ctrl),
	}

	handler := NewHandler(tm.recomputer, tm.store, tm.cache, adapter.NewJSON(), time.Minute)

	router := gin.New()
	SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	return router, tm
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testMatchResult() *recompute.MatchResult {
	return &recompute.MatchResult{
		Persisted: true,
		Matches: []*schema.ProjectMatch{
			{
				ChainID:                 string(domain.ChainMumbai),
				RoundID:                 testRoundID,
				ProjectID:               "0x2d-0x01",
				ProjectPayoutAddress:    "0xaaaa00000000000000000000000000000000aaaa",
				MatchAmountInUSD:        80,
				MatchPoolPercentage:     0.8,
				MatchAmountInToken:      160,
				MatchAmount:             "160000000000000000000",
				TotalContributionsInUSD: 8,
				UniqueContributorsCount: 2,
			},
		},
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetRoundMatch_RecomputesAndCaches(t *testing.T) {
	router, tm := setupRouter(t)

	cacheKey := fmt.Sprintf("round:%s:%s:match", domain.ChainMumbai, testRoundID)
	tm.cache.EXPECT().GetString(gomock.Any(), cacheKey).Return("", nil)
	tm.recomputer.EXPECT().UpdateRoundMatch(gomock.Any(), domain.ChainMumbai, testRoundID).
		Return(testMatchResult(), nil)
	tm.cache.EXPECT().SetString(gomock.Any(), cacheKey, gomock.Any(), time.Minute).Return(nil)

	// Uppercase round id in the URL; the handler lowercases it
	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/80001/0x%s/match", strings.ToUpper(testRoundID[2:])), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var match dto.MatchData
	require.NoError(t, json.Unmarshal(data, &match))
	assert.True(t, match.Persisted)
	require.Len(t, match.Matches, 1)
	assert.Equal(t, "0x2d-0x01", match.Matches[0].ProjectID)
	assert.Equal(t, 80.0, match.Matches[0].MatchAmountInUSD)
	assert.Equal(t, "160000000000000000000", match.Matches[0].MatchAmount)
}

func TestGetRoundMatch_CacheHit(t *testing.T) {
	router, tm := setupRouter(t)

	cached := `{"success":true,"data":{"persisted":true,"saturated":false,"matches":[]}}`
	cacheKey := fmt.Sprintf("round:%s:%s:match", domain.ChainMumbai, testRoundID)
	tm.cache.EXPECT().GetString(gomock.Any(), cacheKey).Return(cached, nil)

	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/80001/%s/match", testRoundID), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cached, w.Body.String())
}

func TestGetRoundMatch_UnsupportedChain(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/1/%s/match", testRoundID), "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Unsupported chain id", resp.Message)
}

func TestGetRoundMatch_RoundNotFound(t *testing.T) {
	router, tm := setupRouter(t)

	tm.cache.EXPECT().GetString(gomock.Any(), gomock.Any()).Return("", nil)
	tm.recomputer.EXPECT().UpdateRoundMatch(gomock.Any(), domain.ChainMumbai, testRoundID).
		Return(nil, domain.ErrRoundNotFound)

	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/80001/%s/match", testRoundID), "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
}

func TestGetMatchPreview(t *testing.T) {
	router, tm := setupRouter(t)

	contributor := "0xcccc00000000000000000000000000000000cccc"
	token := "0x9c3c9283d3e44854697cd22d3faa240cfb032889"

	tm.recomputer.EXPECT().PreviewMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input recompute.PreviewInput) (*recompute.Preview, error) {
			assert.Equal(t, domain.ChainMumbai, input.ChainID)
			assert.Equal(t, testRoundID, input.RoundID)
			assert.Equal(t, "0x2d-0x01", input.ProjectID)
			assert.Equal(t, contributor, input.Contributor)
			assert.Equal(t, token, input.Token)
			assert.Equal(t, 0, input.TipAmount.Cmp(big.NewInt(4000000000000000000)))
			return &recompute.Preview{
				CurrentMatchAmountInToken:    100,
				NewMatchAmountInToken:        160,
				DifferenceMatchAmountInToken: 60,
				ProjectID:                    input.ProjectID,
				RoundID:                      input.RoundID,
				ChainID:                      input.ChainID,
			}, nil
		})

	path := fmt.Sprintf(
		"/api/v1/round/80001/%s/match-preview?projectId=0x2d-0x01&tipAmount=4000000000000000000&token=%s&contributor=%s",
		testRoundID, token, contributor)
	w := doRequest(router, http.MethodGet, path, "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), `"differenceMatchAmountInToken":60`)
}

func TestGetMatchPreview_InvalidParams(t *testing.T) {
	router, _ := setupRouter(t)

	token := "0x9c3c9283d3e44854697cd22d3faa240cfb032889"
	contributor := "0xcccc00000000000000000000000000000000cccc"

	testCases := []struct {
		name  string
		query string
	}{
		{"missing project id", fmt.Sprintf("tipAmount=100&token=%s&contributor=%s", token, contributor)},
		{"missing tip amount", fmt.Sprintf("projectId=0x2d-0x01&token=%s&contributor=%s", token, contributor)},
		{"negative tip amount", fmt.Sprintf("projectId=0x2d-0x01&tipAmount=-5&token=%s&contributor=%s", token, contributor)},
		{"bad token", fmt.Sprintf("projectId=0x2d-0x01&tipAmount=100&token=nope&contributor=%s", contributor)},
		{"bad contributor", fmt.Sprintf("projectId=0x2d-0x01&tipAmount=100&token=%s&contributor=nope", token)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := fmt.Sprintf("/api/v1/round/80001/%s/match-preview?%s", testRoundID, tc.query)
			w := doRequest(router, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetRoundSummary(t *testing.T) {
	router, tm := setupRouter(t)

	cacheKey := fmt.Sprintf("round:%s:%s:summary", domain.ChainMumbai, testRoundID)
	tm.cache.EXPECT().GetString(gomock.Any(), cacheKey).Return("", nil)
	tm.recomputer.EXPECT().UpdateRoundSummary(gomock.Any(), domain.ChainMumbai, testRoundID).
		Return(&recompute.SummaryResult{
			Persisted: true,
			Summary: &schema.RoundSummary{
				ChainID:                 string(domain.ChainMumbai),
				RoundID:                 testRoundID,
				ContributionCount:       3,
				UniqueContributors:      2,
				TotalContributionsInUSD: 5,
				AverageUSDContribution:  5.0 / 3.0,
				TotalTippedInToken:      10,
				AverageTipInToken:       10.0 / 3.0,
			},
		}, nil)
	tm.cache.EXPECT().SetString(gomock.Any(), cacheKey, gomock.Any(), time.Minute).Return(nil)

	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/80001/%s/summary", testRoundID), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"contributionCount":3`)
	assert.Contains(t, w.Body.String(), `"uniqueContributors":2`)
}

func TestGetRoundSummary_UnsupportedStrategy(t *testing.T) {
	router, tm := setupRouter(t)

	tm.cache.EXPECT().GetString(gomock.Any(), gomock.Any()).Return("", nil)
	tm.recomputer.EXPECT().UpdateRoundSummary(gomock.Any(), domain.ChainMumbai, testRoundID).
		Return(nil, domain.ErrUnsupportedVotingStrategy)

	w := doRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/round/80001/%s/summary", testRoundID), "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
}

func TestCheckTipsIncluded(t *testing.T) {
	router, tm := setupRouter(t)

	tm.store.EXPECT().GetMostRecentTip(gomock.Any(), domain.ChainMumbai, testRoundID, "0x2d-0x01").
		Return(&schema.MostRecentTip{
			ChainID:   string(domain.ChainMumbai),
			RoundID:   testRoundID,
			ProjectID: "0x2d-0x01",
			UserID:    "0xbbbb00000000000000000000000000000000bbbb",
			Timestamp: 300,
		}, nil)
	tm.store.EXPECT().GetMostRecentTip(gomock.Any(), domain.ChainMumbai, testRoundID, "0x2d-0x02").
		Return(nil, nil)

	// The round id in the body is uppercase; the handler lowercases it
	body := fmt.Sprintf(`{
		"publicationsToCheck": [
			{"publicationId": "0x2d-0x01", "from": "0xbbbb00000000000000000000000000000000bbbb", "mostRecentCreatedAt": 250, "roundId": "0x%s"},
			{"publicationId": "0x2d-0x02", "from": "0xcccc00000000000000000000000000000000cccc", "mostRecentCreatedAt": 100, "roundId": "%s"}
		]
	}`, strings.ToUpper(testRoundID[2:]), testRoundID)

	w := doRequest(router, http.MethodPost, "/api/v1/tips/80001/included", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var included map[string]bool
	require.NoError(t, json.Unmarshal(data, &included))
	assert.True(t, included["0x2d-0x01"])
	assert.False(t, included["0x2d-0x02"])
}

func TestCheckTipsIncluded_StaleWatermark(t *testing.T) {
	router, tm := setupRouter(t)

	tm.store.EXPECT().GetMostRecentTip(gomock.Any(), domain.ChainMumbai, testRoundID, "0x2d-0x01").
		Return(&schema.MostRecentTip{Timestamp: 100}, nil)

	body := fmt.Sprintf(`{
		"publicationsToCheck": [
			{"publicationId": "0x2d-0x01", "mostRecentCreatedAt": 250, "roundId": "%s"}
		]
	}`, testRoundID)

	w := doRequest(router, http.MethodPost, "/api/v1/tips/80001/included", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"0x2d-0x01":false`)
}

func TestCheckTipsIncluded_InvalidBody(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/tips/80001/included", `{"wrong": true}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForceRecompute_RequiresAuth(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPost,
		fmt.Sprintf("/api/v1/round/80001/%s/recompute", testRoundID), "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForceRecompute_WithAPIKey(t *testing.T) {
	router, tm := setupRouter(t)

	cacheKey := fmt.Sprintf("round:%s:%s:match", domain.ChainMumbai, testRoundID)
	tm.recomputer.EXPECT().UpdateRoundMatch(gomock.Any(), domain.ChainMumbai, testRoundID).
		Return(testMatchResult(), nil)
	tm.cache.EXPECT().SetString(gomock.Any(), cacheKey, gomock.Any(), time.Minute).Return(nil)

	w := doRequest(router, http.MethodPost,
		fmt.Sprintf("/api/v1/round/80001/%s/recompute", testRoundID), "",
		map[string]string{"Authorization": "APIKey " + testAPIKey})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
}
