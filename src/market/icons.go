package market

// Display glyphs for the most common tickers. Anything else falls back to
// the first character of the symbol.
var iconBySymbol = map[string]string{
	"BTC":   "₿",
	"ETH":   "Ξ",
	"USDT":  "₮",
	"BNB":   "B",
	"SOL":   "S",
	"ADA":   "A",
	"XRP":   "X",
	"DOT":   "●",
	"DOGE":  "Ð",
	"AVAX":  "A",
	"LINK":  "L",
	"LTC":   "Ł",
	"MATIC": "M",
	"UNI":   "U",
	"XLM":   "*",
	"VET":   "V",
	"FIL":   "F",
	"TRX":   "T",
	"ATOM":  "A",
	"XMR":   "M",
}

// Tailwind classes consumed directly by the frontend.
var colorBySymbol = map[string]string{
	"BTC":   "text-orange-500",
	"ETH":   "text-blue-500",
	"USDT":  "text-green-500",
	"BNB":   "text-yellow-500",
	"SOL":   "text-purple-500",
	"ADA":   "text-blue-400",
	"XRP":   "text-blue-600",
	"DOT":   "text-pink-500",
	"DOGE":  "text-yellow-400",
	"AVAX":  "text-red-500",
	"LINK":  "text-blue-600",
	"LTC":   "text-gray-400",
	"MATIC": "text-purple-600",
	"UNI":   "text-pink-400",
	"XLM":   "text-blue-300",
	"VET":   "text-blue-500",
	"FIL":   "text-blue-400",
	"TRX":   "text-red-600",
	"ATOM":  "text-purple-400",
	"XMR":   "text-orange-600",
}

var fallbackPalette = []string{
	"text-red-400", "text-blue-400", "text-green-400", "text-yellow-400",
	"text-purple-400", "text-pink-400", "text-indigo-400", "text-teal-400",
	"text-orange-400", "text-cyan-400", "text-lime-400", "text-emerald-400",
}

// IconForSymbol returns the display glyph for an uppercase ticker symbol.
func IconForSymbol(symbol string) string {
	if icon, ok := iconBySymbol[symbol]; ok {
		return icon
	}
	if symbol == "" {
		return "?"
	}
	return string([]rune(symbol)[0])
}

// ColorForSymbol returns the display color for an uppercase ticker symbol.
// Unknown symbols hash onto a fixed palette (sum of character codes modulo
// palette size) so the same symbol always gets the same color.
func ColorForSymbol(symbol string) string {
	if color, ok := colorBySymbol[symbol]; ok {
		return color
	}

	hash := 0
	for _, r := range symbol {
		hash += int(r)
	}
	return fallbackPalette[hash%len(fallbackPalette)]
}
