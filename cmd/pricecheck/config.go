package pricecheck

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Symbols          string  `envconfig:"PRICECHECK_SYMBOLS" default:"BTC,ETH,SOL"`
	Quote            string  `envconfig:"PRICECHECK_QUOTE" default:"USDT"`
	DeviationPercent float64 `envconfig:"PRICECHECK_DEVIATION_PERCENT" default:"1.5"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
