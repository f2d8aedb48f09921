package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"truenorth/src/convert"
	"truenorth/src/model"
)

type currencyCatalog interface {
	List() []model.Currency
	Search(query string) []model.Currency
	BySymbol(symbol string) (model.Currency, bool)
}

// CurrenciesHandler returns the cached asset universe, most-liquid first.
// An optional ?q= filters by symbol or name for the picker modal.
func CurrenciesHandler(catalog currencyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var currencies []model.Currency
		if query := r.URL.Query().Get("q"); query != "" {
			currencies = catalog.Search(query)
		} else {
			currencies = catalog.List()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(currencies); err != nil {
			logger.WithError(err).Error("failed to encode currencies response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// ConvertResponse is a one-shot quote between two catalog currencies.
type ConvertResponse struct {
	FromSymbol      string  `json:"from_symbol"`
	ToSymbol        string  `json:"to_symbol"`
	Amount          float64 `json:"amount"`
	Result          float64 `json:"result"`
	FormattedResult string  `json:"formatted_result"`
	FromPrice       string  `json:"from_price"`
	ToPrice         string  `json:"to_price"`
}

// ConvertHandler quotes ?from=BTC&to=ETH&amount=1 against the current
// catalog prices.
func ConvertHandler(catalog currencyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, ok := catalog.BySymbol(r.URL.Query().Get("from"))
		if !ok {
			http.Error(w, "unknown from currency", http.StatusBadRequest)
			return
		}
		to, ok := catalog.BySymbol(r.URL.Query().Get("to"))
		if !ok {
			http.Error(w, "unknown to currency", http.StatusBadRequest)
			return
		}

		amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
		if err != nil {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		result := convert.Convert(from, to, amount)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ConvertResponse{
			FromSymbol:      from.Symbol,
			ToSymbol:        to.Symbol,
			Amount:          amount,
			Result:          result,
			FormattedResult: convert.FormatAmount(result),
			FromPrice:       convert.FormatPrice(from.Price),
			ToPrice:         convert.FormatPrice(to.Price),
		}); err != nil {
			logger.WithError(err).Error("failed to encode convert response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
