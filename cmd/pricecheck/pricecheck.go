// Package pricecheck cross-checks the CoinGecko catalog prices against spot
// tickers from Binance. A listing feed serving stale or skewed prices would
// quietly misquote every conversion on the landing page, so this runs as an
// ops tool before pointing the site at a new upstream key.
package pricecheck

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
	logger "github.com/sirupsen/logrus"

	"truenorth/src/connectors"
	"truenorth/src/market"
)

type PriceCheck struct {
	Config   *Config
	exchange goex.API
}

func (p *PriceCheck) Start() error {
	p.Config = GetConfig()
	p.exchange = p.newBinanceInstance()

	connectorsCfg := connectors.GetConfig()
	catalog := market.NewCatalog(
		connectors.NewCoinGeckoClient(connectorsCfg.CoinGeckoAPIKey, connectorsCfg.CoinGeckoBaseURL),
	)
	catalog.Refresh(context.Background())

	for _, symbol := range strings.Split(p.Config.Symbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		p.checkSymbol(catalog, symbol)
	}

	return nil
}

func (*PriceCheck) newBinanceInstance() *binance.Binance {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	return binance.NewWithConfig(apiConfig)
}

func (p *PriceCheck) checkSymbol(catalog *market.Catalog, symbol string) {
	listed, ok := catalog.BySymbol(symbol)
	if !ok {
		logger.WithField("symbol", symbol).Warn("Symbol not present in catalog")
		return
	}

	pair := goex.NewCurrencyPair(
		goex.Currency{Symbol: symbol},
		goex.Currency{Symbol: p.Config.Quote},
	)

	ticker, err := p.exchange.GetTicker(pair)
	if err != nil {
		logger.WithField("symbol", symbol).WithError(err).Error("Failed to fetch exchange ticker")
		return
	}
	if ticker.Last <= 0 || listed.Price <= 0 {
		logger.WithField("symbol", symbol).Warn("Non-positive price, skipping comparison")
		return
	}

	deviation := math.Abs(listed.Price-ticker.Last) / ticker.Last * 100

	entry := logger.WithFields(map[string]interface{}{
		"symbol":        symbol,
		"catalog_price": listed.Price,
		"spot_price":    ticker.Last,
		"deviation_pct": deviation,
	})

	if deviation > p.Config.DeviationPercent {
		entry.Warn("Catalog price deviates from spot")
		return
	}
	entry.Info("Catalog price within tolerance")
}
