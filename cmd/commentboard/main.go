package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/MyNameIsWhaaat/commentboard/internal/config"
	"github.com/MyNameIsWhaaat/commentboard/internal/logging"
)

type flags struct {
	EnvFile  string
	LogLevel string
}

func main() {
	var (
		f   flags
		cfg config.Config
	)

	app := &cli.Command{
		Name:  "commentboard",
		Usage: "Serve a comment board with replies, stars and sorting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "path to a .env file (defaults to ./.env when present)",
				Sources:     cli.EnvVars("COMMENTBOARD_ENV_FILE"),
				Destination: &f.EnvFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error), overrides LOG_LEVEL",
				Destination: &f.LogLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			cfg, err = config.Load(f.EnvFile)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if f.LogLevel != "" {
				cfg.Log.Level = f.LogLevel
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, nil)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			zerolog.DefaultContextLogger = &log.Logger
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, cfg)
				},
			},
			{
				Name:  "show",
				Usage: "Print the stored board to the terminal",
				Action: func(ctx context.Context, c *cli.Command) error {
					return show(ctx, cfg, os.Stdout)
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("commentboard failed")
	}
}
