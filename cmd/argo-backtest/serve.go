package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/api"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the simulation API over HTTP",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address. Defaults to the configured listen_addr",
			},
		),
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := cmd.String("addr")
	if addr == "" {
		addr = a.config.ListenAddr
	}

	server := api.NewServer(a.service, a.logger)
	if err := server.Start(addr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	a.logger.Info("Shutting down", zap.String("address", server.Addr()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
