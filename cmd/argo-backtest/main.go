package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "argo-backtest",
		Usage:   "Backtest mean reversion, double RSI and pair arbitrage strategies",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			runCommand(),
			serveCommand(),
			statsCommand(),
			schemaCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
