package model

// Currency is a market-data record assembled by the market catalog from the
// CoinGecko feed (or the built-in fallback set). It lives in memory for the
// session and is never persisted; orders snapshot the fields they need.
type Currency struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	Rank      int     `json:"rank"`
	Change24h float64 `json:"change24h"`
	Image     string  `json:"image,omitempty"`
}
