package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/config"
	"orusweb/internal/handlers"
	"orusweb/internal/logger"
	"orusweb/internal/repositories"
	"orusweb/internal/routes"

	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cli.Command{
	Name:    "serve",
	Aliases: []string{"s"},
	Usage:   "Run the HTTP server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Usage:   "listen port",
			EnvVars: []string{"PORT"},
		},
	},
	Action: func(c *cli.Context) error {
		cfg := config.Load()
		if port := c.String("port"); port != "" {
			cfg.Port = port
		}
		return serve(c.Context, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(config.IsProduction())
	defer func() { _ = log.Sync() }()

	repo, closer, err := repositories.Open(cfg, log)
	if err != nil {
		log.Error("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	deps := handlers.NewDeps(cfg, repo, client.NewBackends(cfg, log), log)
	defer deps.Close()

	app := routes.NewApp(deps)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
