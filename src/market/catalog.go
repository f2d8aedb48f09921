package market

import (
	"context"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"truenorth/src/connectors"
	"truenorth/src/model"
)

// marketPages mirrors the upstream universe: two full pages of 250 plus a
// short third page, giving the top 510 assets by market cap.
var marketPages = []struct {
	page    int
	perPage int
}{
	{page: 1, perPage: 250},
	{page: 2, perPage: 250},
	{page: 3, perPage: 10},
}

type marketSource interface {
	Markets(ctx context.Context, page, perPage int) ([]connectors.MarketsRow, error)
}

// FetchTop assembles the asset universe across the configured pages,
// most-liquid first. A failed first page falls back to the built-in list;
// a failed later page contributes nothing and the partial result is kept.
// FetchTop therefore never fails: the UI always has currencies to show.
func FetchTop(ctx context.Context, src marketSource) []model.Currency {
	var rows []connectors.MarketsRow

	for i, p := range marketPages {
		pageRows, err := src.Markets(ctx, p.page, p.perPage)
		if err != nil {
			if i == 0 {
				logger.WithError(err).
					Warn("First market page failed, serving fallback currencies")
				return FallbackCurrencies()
			}
			logger.WithFields(map[string]interface{}{
				"page":     p.page,
				"per_page": p.perPage,
			}).WithError(err).Warn("Market page failed, keeping partial result")
			continue
		}
		rows = append(rows, pageRows...)
	}

	return mapRows(rows)
}

// mapRows normalizes upstream rows defensively: symbols are uppercased, a
// missing rank becomes the 1-based position in the combined sequence, a
// missing 24h change becomes zero, and every asset gets a glyph and color.
func mapRows(rows []connectors.MarketsRow) []model.Currency {
	currencies := make([]model.Currency, 0, len(rows))

	for i, row := range rows {
		symbol := strings.ToUpper(row.Symbol)

		rank := row.MarketCapRank
		if rank <= 0 {
			rank = i + 1
		}

		currencies = append(currencies, model.Currency{
			ID:        row.ID,
			Symbol:    symbol,
			Name:      row.Name,
			Price:     row.CurrentPrice,
			Icon:      IconForSymbol(symbol),
			Color:     ColorForSymbol(symbol),
			Rank:      rank,
			Change24h: row.PriceChangePercentage24h,
			Image:     row.Image,
		})
	}

	return currencies
}

// Catalog holds the last good currency list behind a read/write lock and
// refreshes it from the market source on demand or on a timer.
type Catalog struct {
	src marketSource

	mu         sync.RWMutex
	currencies []model.Currency
}

func NewCatalog(src marketSource) *Catalog {
	return &Catalog{src: src}
}

// Refresh replaces the cached list with a fresh fetch. The fetch itself
// degrades to the fallback list rather than erroring, so the catalog is
// populated after the first call no matter what.
func (c *Catalog) Refresh(ctx context.Context) {
	currencies := FetchTop(ctx, c.src)

	c.mu.Lock()
	c.currencies = currencies
	c.mu.Unlock()

	logger.WithField("currencies", len(currencies)).Info("Market catalog refreshed")
}

// List returns a copy of the cached currency list, most-liquid first.
func (c *Catalog) List() []model.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}

// BySymbol looks up a currency by its uppercase ticker symbol.
func (c *Catalog) BySymbol(symbol string) (model.Currency, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, currency := range c.currencies {
		if currency.Symbol == symbol {
			return currency, true
		}
	}
	return model.Currency{}, false
}

// Search filters the cached list by a case-insensitive substring match on
// symbol or name. An empty query returns the full list.
func (c *Catalog) Search(query string) []model.Currency {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.List()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []model.Currency
	for _, currency := range c.currencies {
		if strings.Contains(strings.ToLower(currency.Symbol), query) ||
			strings.Contains(strings.ToLower(currency.Name), query) {
			out = append(out, currency)
		}
	}
	return out
}

// StartRefresher re-fetches the catalog on the given interval until the
// context is cancelled. Each fetch carries its own deadline so a hung
// upstream call cannot stall the loop.
func (c *Catalog) StartRefresher(ctx context.Context, interval, fetchTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Market catalog refresher stopped")
				return
			case <-ticker.C:
				fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
				c.Refresh(fetchCtx)
				cancel()
			}
		}
	}()
}
