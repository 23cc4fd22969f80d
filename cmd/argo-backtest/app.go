package main

import (
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/config"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/simulation"
	"github.com/rxtech-lab/argo-backtest/internal/store"
	"github.com/rxtech-lab/argo-backtest/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

// app holds everything a command needs.
type app struct {
	config  config.Config
	logger  *logger.Logger
	store   store.RunStore
	service *simulation.Service
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return nil, err
	}

	provider, err := marketdata.NewProvider(cfg.MarketData(), log)
	if err != nil {
		return nil, err
	}

	runStore, err := store.NewDuckDBRunStore(cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	beta := marketdata.NewRegressionBeta(provider, cfg.BenchmarkTicker, cfg.Period, cfg.Interval)

	return &app{
		config:  cfg,
		logger:  log,
		store:   runStore,
		service: simulation.NewService(cfg, provider, beta, engine.NewBacktestEngine(log), runStore, log),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file. Defaults are used when empty",
			Sources: cli.EnvVars("ARGO_BACKTEST_CONFIG"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log at debug level",
		},
	}
}
