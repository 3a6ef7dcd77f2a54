package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/lcmgen/internal/codegen"
	"github.com/okra-platform/lcmgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	flags := &commands.Flags{}
	ctrl := &commands.Controller{
		Flags: flags,
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})

	generateFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "lang",
			Usage:       fmt.Sprintf("target language (%v)", codegen.DefaultRegistry.Languages()),
			Destination: &flags.Lang,
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "output root directory",
			Destination: &flags.Out,
		},
		&cli.StringSliceFlag{
			Name:        "schema",
			Usage:       "serialized model file, may be repeated",
			Destination: &flags.Schema,
		},
		&cli.StringFlag{
			Name:        "go-import-prefix",
			Usage:       "Go import path of the output root",
			Destination: &flags.GoImportPrefix,
		},
		&cli.BoolFlag{
			Name:        "dump-model",
			Usage:       "print the loaded model before generating",
			Destination: &flags.DumpModel,
		},
	}

	app := &cli.Command{
		Name:    "lcmgen",
		Usage:   "Generate Go and Rust marshalling code from LCM message schemas",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LCMGEN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to lcmgen.yaml (default: searched from the working directory upward)",
				Destination: &flags.Config,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Write one source file per schema package",
				Flags: generateFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "check",
				Usage: "Fail if the generated files are out of date",
				Flags: generateFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Check(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever a schema file changes",
				Flags: generateFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "languages",
				Usage: "List the supported target languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Languages(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal().Err(err).Msg("failed to run lcmgen")
	}
}
