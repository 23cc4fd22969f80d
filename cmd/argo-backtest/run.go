package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/report"
	"github.com/rxtech-lab/argo-backtest/internal/simulation"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// runSummary is what the run command prints per ticker.
type runSummary struct {
	ID        string                `yaml:"id"`
	Algorithm types.StrategyType    `yaml:"algorithm"`
	Tickers   []string              `yaml:"tickers"`
	Period    string                `yaml:"period"`
	Interval  string                `yaml:"interval"`
	Beta      float64               `yaml:"beta"`
	Stats     types.SimulationStats `yaml:"stats"`
	Report    *report.Files         `yaml:"report,omitempty"`
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Backtest a strategy on one or more tickers",
		ArgsUsage: "[ticker...]",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:     "algorithm",
				Aliases:  []string{"a"},
				Usage:    fmt.Sprintf("Strategy to run (%s)", joinStrategies()),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "ticker2",
				Usage: "Second leg of pair strategies",
				Value: simulation.DefaultPairTicker,
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Lookback such as 12mo or 2y. Defaults to the configured period",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval such as 1d. Defaults to the configured interval",
			},
			&cli.StringSliceFlag{
				Name:  "param",
				Usage: "Override a strategy parameter, for example --param time_window=30",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "Write stats.yaml, trades.parquet and equity.parquet into the results folder",
			},
		),
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tickers := cmd.Args().Slice()
	if len(tickers) == 0 {
		tickers = []string{simulation.DefaultTicker}
	}

	params, err := parseParams(a.config.Strategy, cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(tickers)*len(engine.Stages),
		progressbar.OptionSetDescription(fmt.Sprintf("Running %s", cmd.String("algorithm"))),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	onStageEnd := engine.OnStageEndCallback(func(engine.Stage) {
		_ = bar.Add(1)
	})

	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()

	for _, ticker := range tickers {
		req := a.service.NewRequest(types.StrategyType(cmd.String("algorithm")))
		req.Ticker = ticker
		req.Ticker2 = cmd.String("ticker2")
		req.Period = cmd.String("period")
		req.Interval = cmd.String("interval")
		req.Params = params
		req.Report = cmd.Bool("report")

		response, err := a.service.Simulate(ctx, req, engine.LifecycleCallbacks{OnStageEnd: &onStageEnd})
		if err != nil {
			_ = bar.Exit()

			return fmt.Errorf("%s: %w", ticker, err)
		}

		if err := encoder.Encode(runSummary{
			ID:        response.ID,
			Algorithm: response.Algorithm,
			Tickers:   response.Tickers,
			Period:    response.Period,
			Interval:  response.Interval,
			Beta:      response.Beta,
			Stats:     response.Stats,
			Report:    response.Report,
		}); err != nil {
			return err
		}
	}

	return bar.Finish()
}

// parseParams applies "key=value" overrides on top of defaults.
func parseParams(defaults strategy.Params, overrides []string) (strategy.Params, error) {
	params := defaults

	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return strategy.Params{}, errors.Newf(errors.ErrCodeInvalidParameter, "parameter %q is not key=value", override)
		}

		decoder := yaml.NewDecoder(strings.NewReader(strings.TrimSpace(key) + ": " + strings.TrimSpace(value)))
		decoder.KnownFields(true)

		if err := decoder.Decode(&params); err != nil {
			return strategy.Params{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid parameter %q", override)
		}
	}

	return params, nil
}

func joinStrategies() string {
	names := make([]string, len(types.AllStrategyTypes))
	for i, t := range types.AllStrategyTypes {
		names[i] = string(t)
	}

	return strings.Join(names, ", ")
}
