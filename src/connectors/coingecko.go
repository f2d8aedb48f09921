// REST client for the CoinGecko markets feed.
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// MarketsRow is one asset as reported by /coins/markets. Upstream omits
// fields for thin assets, so rank and change are normalized downstream.
type MarketsRow struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCapRank            int     `json:"market_cap_rank"`
	Image                    string  `json:"image"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

type CoinGeckoClient struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func NewCoinGeckoClient(apiKey, baseURL string) *CoinGeckoClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultCoinGeckoBaseURL
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(defaultRetryAttempts - 1).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &CoinGeckoClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    httpClient,
	}
}

// Markets fetches one page of the USD market listing ordered by market cap.
func (c *CoinGeckoClient) Markets(ctx context.Context, page, perPage int) ([]MarketsRow, error) {
	var rows []MarketsRow

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-cg-demo-api-key", c.apiKey).
		SetQueryParams(map[string]string{
			"vs_currency":             "usd",
			"order":                   "market_cap_desc",
			"per_page":                strconv.Itoa(perPage),
			"page":                    strconv.Itoa(page),
			"sparkline":               "false",
			"price_change_percentage": "24h",
		}).
		SetResult(&rows).
		Get("/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("coingecko markets page %d: %w", page, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko markets page %d: status %d", page, resp.StatusCode())
	}

	logger.WithFields(map[string]interface{}{
		"page":     page,
		"per_page": perPage,
		"rows":     len(rows),
	}).Debug("Fetched CoinGecko markets page")

	return rows, nil
}
