package market

import "truenorth/src/model"

// FallbackCurrencies returns the built-in asset set used when the live price
// source is unreachable. Prices are plausible static values so the calculator
// stays usable offline.
func FallbackCurrencies() []model.Currency {
	return []model.Currency{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Price: 43250.00, Icon: "₿", Color: "text-orange-500", Rank: 1, Change24h: 2.5},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Price: 2680.50, Icon: "Ξ", Color: "text-blue-500", Rank: 2, Change24h: 1.8},
		{ID: "tether", Symbol: "USDT", Name: "Tether", Price: 1.00, Icon: "₮", Color: "text-green-500", Rank: 3, Change24h: 0.1},
		{ID: "binancecoin", Symbol: "BNB", Name: "BNB", Price: 315.20, Icon: "B", Color: "text-yellow-500", Rank: 4, Change24h: 3.2},
		{ID: "solana", Symbol: "SOL", Name: "Solana", Price: 98.45, Icon: "S", Color: "text-purple-500", Rank: 5, Change24h: 4.1},
		{ID: "cardano", Symbol: "ADA", Name: "Cardano", Price: 0.52, Icon: "A", Color: "text-blue-400", Rank: 6, Change24h: -1.2},
		{ID: "xrp", Symbol: "XRP", Name: "XRP", Price: 0.63, Icon: "X", Color: "text-blue-600", Rank: 7, Change24h: 2.8},
		{ID: "polkadot", Symbol: "DOT", Name: "Polkadot", Price: 7.20, Icon: "●", Color: "text-pink-500", Rank: 8, Change24h: 1.5},
		{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", Price: 0.08, Icon: "Ð", Color: "text-yellow-400", Rank: 9, Change24h: 5.2},
		{ID: "avalanche", Symbol: "AVAX", Name: "Avalanche", Price: 36.80, Icon: "A", Color: "text-red-500", Rank: 10, Change24h: 3.7},
	}
}
