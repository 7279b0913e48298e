package pricing_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/mocks"
	"github.com/roundlabs/quadmatch/internal/providers/pricing"
)

const (
	pricingBaseURL = "https://api.coingecko.com/api/v3"
	tokenA         = "0x0000000000000000000000000000000000000aaa"
	tokenB         = "0x0000000000000000000000000000000000000bbb"
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

type pricingMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	proxy      *mocks.MockRateLimitProxy
}

func setupPricingClient(t *testing.T, apiKey string) (*pricingMocks, pricing.Client) {
	ctrl := gomock.NewController(t)

	pm := &pricingMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
		proxy:      mocks.NewMockRateLimitProxy(ctrl),
	}

	pm.proxy.EXPECT().
		Request(gomock.Any(), pricing.ProviderName, gomock.Any()).
		DoAndReturn(func(ctx context.Context, providerName string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
			return fn(ctx)
		}).
		AnyTimes()

	platforms := map[string]string{string(domain.ChainMumbai): "polygon-pos"}
	client := pricing.NewClient(pm.httpClient, pm.proxy, pricingBaseURL, apiKey, platforms)

	return pm, client
}

// serveJSON unmarshals payload into the Get result argument
func serveJSON(payload string) func(ctx context.Context, url string, result interface{}) error {
	return func(ctx context.Context, url string, result interface{}) error {
		return json.Unmarshal([]byte(payload), result)
	}
}

func TestFetchAverageTokenPrices(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	chartA := `{"prices": [[1700000000000, 2.0], [1700003600000, 4.0]]}`
	chartB := `{"prices": []}`

	pm.httpClient.EXPECT().
		Get(gomock.Any(),
			pricingBaseURL+"/coins/polygon-pos/contract/"+tokenA+"/market_chart/range?vs_currency=usd&from=1700000000&to=1700600000",
			gomock.Any()).
		DoAndReturn(serveJSON(chartA))

	pm.httpClient.EXPECT().
		Get(gomock.Any(),
			pricingBaseURL+"/coins/polygon-pos/contract/"+tokenB+"/market_chart/range?vs_currency=usd&from=1700000000&to=1700600000",
			gomock.Any()).
		DoAndReturn(serveJSON(chartB))

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA, tokenB}, 1700000000, 1700600000)

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.InDelta(t, 3.0, prices[domain.NormalizeAddress(tokenA)], 1e-9)

	// a token with no price history is absent, not zero
	_, ok := prices[domain.NormalizeAddress(tokenB)]
	assert.False(t, ok)
}

func TestFetchAverageTokenPrices_MalformedPointsExcluded(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	// truncated points must not dilute the average as phantom zeros
	chart := `{"prices": [[1700000000000, 2.0], [1700003600000], [1700007200000, 4.0], []]}`

	pm.httpClient.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(serveJSON(chart))

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA}, 1700000000, 1700600000)

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.InDelta(t, 3.0, prices[domain.NormalizeAddress(tokenA)], 1e-9)
}

func TestFetchAverageTokenPrices_OnlyMalformedPoints(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	pm.httpClient.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(serveJSON(`{"prices": [[1700000000000], []]}`))

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA}, 1700000000, 1700600000)

	require.NoError(t, err)
	_, ok := prices[domain.NormalizeAddress(tokenA)]
	assert.False(t, ok, "unaverageable token must be absent, not zero")
}

func TestFetchAverageTokenPrices_TransportError(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	pm.httpClient.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("oracle unreachable"))

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA}, 1700000000, 1700600000)

	assert.Error(t, err)
	assert.Nil(t, prices)
}

func TestFetchAverageTokenPrices_UnconfiguredChain(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainPolygon, []string{tokenA}, 1700000000, 1700600000)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no asset platform configured")
	assert.Nil(t, prices)
}

func TestFetchAverageTokenPrices_APIKeyAppended(t *testing.T) {
	pm, client := setupPricingClient(t, "cg-secret")
	defer pm.ctrl.Finish()

	pm.httpClient.EXPECT().
		Get(gomock.Any(),
			pricingBaseURL+"/coins/polygon-pos/contract/"+tokenA+"/market_chart/range?vs_currency=usd&from=0&to=1&x_cg_pro_api_key=cg-secret",
			gomock.Any()).
		DoAndReturn(serveJSON(`{"prices": [[0, 1.5]]}`))

	prices, err := client.FetchAverageTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA}, 0, 1)

	require.NoError(t, err)
	assert.InDelta(t, 1.5, prices[domain.NormalizeAddress(tokenA)], 1e-9)
}

func TestFetchCurrentTokenPrices(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	spot := `{
		"` + tokenA + `": {"usd": 1.25},
		"` + tokenB + `": {}
	}`

	pm.httpClient.EXPECT().
		Get(gomock.Any(),
			pricingBaseURL+"/simple/token_price/polygon-pos?contract_addresses="+tokenA+"%2C"+tokenB+"&vs_currencies=usd",
			gomock.Any()).
		DoAndReturn(serveJSON(spot))

	prices, err := client.FetchCurrentTokenPrices(
		context.Background(), domain.ChainMumbai, []string{tokenA, tokenB})

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.InDelta(t, 1.25, prices[domain.NormalizeAddress(tokenA)], 1e-9)
}

func TestFetchCurrentTokenPrices_Empty(t *testing.T) {
	pm, client := setupPricingClient(t, "")
	defer pm.ctrl.Finish()

	prices, err := client.FetchCurrentTokenPrices(context.Background(), domain.ChainMumbai, nil)

	require.NoError(t, err)
	assert.Empty(t, prices)
}
