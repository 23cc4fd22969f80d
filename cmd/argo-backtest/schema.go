package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/config"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "Print the JSON schema of the configuration or of a strategy's parameters",
		ArgsUsage: "config|<strategy>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()

			var (
				schema string
				err    error
			)

			switch target {
			case "", "config":
				schema, err = (&config.Config{}).GenerateSchemaJSON()
			default:
				schema, err = strategy.Schema(types.StrategyType(target))
			}

			if err != nil {
				return err
			}

			fmt.Println(schema)

			return nil
		},
	}
}
