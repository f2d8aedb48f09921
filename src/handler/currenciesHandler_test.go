package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"truenorth/src/model"
)

type mockCatalog struct {
	currencies []model.Currency
	lastQuery  string
}

func (m *mockCatalog) List() []model.Currency {
	return m.currencies
}

func (m *mockCatalog) Search(query string) []model.Currency {
	m.lastQuery = query
	var out []model.Currency
	for _, c := range m.currencies {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockCatalog) BySymbol(symbol string) (model.Currency, bool) {
	for _, c := range m.currencies {
		if c.Symbol == strings.ToUpper(strings.TrimSpace(symbol)) {
			return c, true
		}
	}
	return model.Currency{}, false
}

func testCatalog() *mockCatalog {
	return &mockCatalog{currencies: []model.Currency{
		{Symbol: "BTC", Name: "Bitcoin", Price: 43250.00, Rank: 1},
		{Symbol: "ETH", Name: "Ethereum", Price: 2680.50, Rank: 2},
	}}
}

func TestCurrenciesHandler(t *testing.T) {
	catalog := testCatalog()
	handler := CurrenciesHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/currencies", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var currencies []model.Currency
	if err := json.Unmarshal(rr.Body.Bytes(), &currencies); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(currencies) != 2 || currencies[0].Symbol != "BTC" {
		t.Fatalf("unexpected currencies: %+v", currencies)
	}
}

func TestCurrenciesHandlerSearch(t *testing.T) {
	catalog := testCatalog()
	handler := CurrenciesHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/currencies?q=ether", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if catalog.lastQuery != "ether" {
		t.Fatalf("search query not forwarded: %q", catalog.lastQuery)
	}

	var currencies []model.Currency
	if err := json.Unmarshal(rr.Body.Bytes(), &currencies); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(currencies) != 1 || currencies[0].Symbol != "ETH" {
		t.Fatalf("unexpected search result: %+v", currencies)
	}
}

func TestConvertHandler(t *testing.T) {
	handler := ConvertHandler(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/convert?from=BTC&to=ETH&amount=1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp ConvertResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.FormattedResult, "16.1350") {
		t.Fatalf("unexpected quote: %+v", resp)
	}
	if resp.FromPrice != "43,250.00" || resp.ToPrice != "2,680.50" {
		t.Fatalf("unexpected formatted prices: %+v", resp)
	}
}

func TestConvertHandlerBadInput(t *testing.T) {
	handler := ConvertHandler(testCatalog())

	cases := []struct {
		name string
		url  string
	}{
		{name: "unknown from", url: "/api/convert?from=NOPE&to=ETH&amount=1"},
		{name: "unknown to", url: "/api/convert?from=BTC&to=NOPE&amount=1"},
		{name: "bad amount", url: "/api/convert?from=BTC&to=ETH&amount=abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
		})
	}
}
