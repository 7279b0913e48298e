// Package pricing resolves token USD prices through the CoinGecko API,
// both time-averaged over a round's window and current spot.
package pricing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/ratelimit"
)

// ProviderName is the rate limiter provider key for price oracle requests
const ProviderName = "pricing"

// marketChartResponse is CoinGecko's market_chart/range payload. Each
// price point is a [timestampMillis, price] pair.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// Client defines the interface for price oracle operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/pricing_client.go -package=mocks -mock_names=Client=MockPricingClient
type Client interface {
	// FetchAverageTokenPrices returns each token's average USD price over
	// [startTime, endTime]. Tokens the oracle cannot price are absent from
	// the result, not zeroed.
	FetchAverageTokenPrices(ctx context.Context, chainID domain.ChainID, tokenAddresses []string, startTime, endTime int64) (map[string]float64, error)

	// FetchCurrentTokenPrices returns each token's current USD spot price.
	// Unknown tokens are absent from the result.
	FetchCurrentTokenPrices(ctx context.Context, chainID domain.ChainID, tokenAddresses []string) (map[string]float64, error)
}

// CoinGeckoClient implements Client over the CoinGecko HTTP API
type CoinGeckoClient struct {
	httpClient adapter.HTTPClient
	limiter    ratelimit.Proxy
	baseURL    string
	apiKey     string
	platforms  map[string]string
}

// NewClient creates a new CoinGecko price client. platforms maps chain
// ids to CoinGecko asset-platform slugs; limiter may be nil to disable
// rate limiting.
func NewClient(httpClient adapter.HTTPClient, limiter ratelimit.Proxy, baseURL, apiKey string, platforms map[string]string) Client {
	return &CoinGeckoClient{
		httpClient: httpClient,
		limiter:    limiter,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		platforms:  platforms,
	}
}

// FetchAverageTokenPrices averages each token's price history over the
// window. An oracle transport failure aborts the whole fetch; a token
// with an empty price history is skipped.
func (c *CoinGeckoClient) FetchAverageTokenPrices(ctx context.Context, chainID domain.ChainID, tokenAddresses []string, startTime, endTime int64) (map[string]float64, error) {
	platform, err := c.platform(chainID)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64)

	for _, address := range tokenAddresses {
		requestURL := fmt.Sprintf(
			"%s/coins/%s/contract/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
			c.baseURL, platform, strings.ToLower(address), startTime, endTime,
		)

		chart, err := ratelimit.Request(ctx, c.limiter, ProviderName, func(ctx context.Context) (*marketChartResponse, error) {
			var response marketChartResponse
			if err := c.httpClient.Get(ctx, c.withAPIKey(requestURL), &response); err != nil {
				return nil, err
			}
			return &response, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch price history for token %s: %w", address, err)
		}

		if len(chart.Prices) == 0 {
			logger.Warn("No price history for token",
				zap.String("token", address),
				zap.String("chain_id", string(chainID)),
			)
			continue
		}

		sum := 0.0
		points := 0
		for _, point := range chart.Prices {
			// points arrive as [timestamp, price] pairs
			if len(point) < 2 {
				continue
			}
			sum += point[1]
			points++
		}
		if points == 0 {
			continue
		}
		prices[domain.NormalizeAddress(address)] = sum / float64(points)
	}

	return prices, nil
}

// FetchCurrentTokenPrices fetches spot prices for all tokens in one call
func (c *CoinGeckoClient) FetchCurrentTokenPrices(ctx context.Context, chainID domain.ChainID, tokenAddresses []string) (map[string]float64, error) {
	platform, err := c.platform(chainID)
	if err != nil {
		return nil, err
	}

	if len(tokenAddresses) == 0 {
		return map[string]float64{}, nil
	}

	lowered := make([]string, len(tokenAddresses))
	for i, address := range tokenAddresses {
		lowered[i] = strings.ToLower(address)
	}

	requestURL := fmt.Sprintf(
		"%s/simple/token_price/%s?contract_addresses=%s&vs_currencies=usd",
		c.baseURL, platform, url.QueryEscape(strings.Join(lowered, ",")),
	)

	spot, err := ratelimit.Request(ctx, c.limiter, ProviderName, func(ctx context.Context) (map[string]map[string]float64, error) {
		response := map[string]map[string]float64{}
		if err := c.httpClient.Get(ctx, c.withAPIKey(requestURL), &response); err != nil {
			return nil, err
		}
		return response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current token prices: %w", err)
	}

	prices := make(map[string]float64)
	for address, quote := range spot {
		usd, ok := quote["usd"]
		if !ok {
			continue
		}
		prices[domain.NormalizeAddress(address)] = usd
	}

	return prices, nil
}

func (c *CoinGeckoClient) platform(chainID domain.ChainID) (string, error) {
	platform, ok := c.platforms[string(chainID)]
	if !ok {
		return "", fmt.Errorf("no asset platform configured for chain %s", chainID)
	}
	return platform, nil
}

func (c *CoinGeckoClient) withAPIKey(requestURL string) string {
	if c.apiKey == "" {
		return requestURL
	}
	return requestURL + "&x_cg_pro_api_key=" + url.QueryEscape(c.apiKey)
}
