package main

import (
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"truenorth/cmd/pricecheck"
)

var Version string

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	app := cli.NewApp()
	app.Name = "TrueNorth CMD"
	app.Usage = "The TrueNorth command line interface"

	app.Commands = []cli.Command{
		priceCheckCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var priceCheckCMD = cli.Command{
	Name:        "pricecheck",
	Usage:       "compare catalog prices against exchange spot tickers",
	Action:      priceCheckAction,
	ArgsUsage:   "",
	Flags:       []cli.Flag{},
	Description: `Cross-check CoinGecko listing prices against Binance spot`,
}

func priceCheckAction(c *cli.Context) error {
	SetupLogger()

	check := &pricecheck.PriceCheck{}
	return check.Start()
}
