package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rxtech-lab/argo-backtest/internal/store"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print aggregate statistics of the stored runs",
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "runs",
				Usage: "List the stored runs instead of the aggregates",
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "Only list runs of this algorithm",
			},
		),
		Action: statsAction,
	}
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if cmd.Bool("runs") {
		runs, err := a.service.Runs(ctx, store.ListRunsFilter{Algorithm: types.StrategyType(cmd.String("algorithm"))})
		if err != nil {
			return err
		}

		return encoder.Encode(runs)
	}

	statistics, err := a.service.Statistics(ctx)
	if err != nil {
		return err
	}

	return encoder.Encode(statistics)
}
