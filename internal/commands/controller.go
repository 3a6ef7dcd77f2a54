// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/lcmgen/internal/codegen"
	"github.com/okra-platform/lcmgen/internal/config"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// Flags holds the command line values that override lcmgen.yaml
type Flags struct {
	LogLevel       string
	Config         string
	Lang           string
	Out            string
	Schema         []string
	GoImportPrefix string
	DumpModel      bool
}

// Controller runs the commands. Out receives user-facing output and
// defaults to stdout.
type Controller struct {
	Flags  *Flags
	Out    io.Writer
	Logger *zerolog.Logger
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) logger() zerolog.Logger {
	if c.Logger == nil {
		return log.Logger
	}
	return *c.Logger
}

// loadConfig reads the configuration file and applies the flag overrides.
// A missing lcmgen.yaml is only an error when --config names one.
func (c *Controller) loadConfig() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	flags := c.Flags
	if flags == nil {
		flags = &Flags{}
	}

	if flags.Config != "" {
		path = flags.Config
		cfg, err = config.LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
	} else {
		var dir string
		cfg, dir, err = config.LoadConfig()
		switch {
		case errors.Is(err, config.ErrNotFound):
			cfg = config.Default()
		case err != nil:
			return nil, "", err
		default:
			path = filepath.Join(dir, config.FileName)
		}
	}

	if flags.Lang != "" {
		cfg.Language = flags.Lang
	}
	if flags.Out != "" {
		cfg.Output = flags.Out
	}
	if len(flags.Schema) > 0 {
		cfg.Schema = flags.Schema
	}
	if flags.GoImportPrefix != "" {
		cfg.Go.ImportPrefix = flags.GoImportPrefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, path, nil
}

func options(cfg *config.Config) codegen.Options {
	return codegen.Options{
		FileName:         cfg.FileNameFor(cfg.Language),
		GoImportPrefix:   cfg.Go.ImportPrefix,
		GoRuntimeImport:  cfg.Go.RuntimeImport,
		GoDefaultPackage: cfg.Go.DefaultPackage,
	}
}

// generate loads the schema and writes the package files below root
func (c *Controller) generate(ctx context.Context, cfg *config.Config, root string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	backend, err := codegen.DefaultRegistry.Get(cfg.Language, options(cfg))
	if err != nil {
		return nil, err
	}

	model, err := schema.LoadFiles(cfg.Schema...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	if c.Flags != nil && c.Flags.DumpModel {
		spew.Fdump(c.out(), model)
	}

	if err := checkGoImports(cfg, model); err != nil {
		return nil, err
	}

	return codegen.NewAggregator(backend, root, c.logger()).Run(model)
}

// checkGoImports rejects a Go run whose output cannot build: cross-package
// references need the module path of the output root.
func checkGoImports(cfg *config.Config, model *schema.Model) error {
	if cfg.Language != "go" || cfg.Go.ImportPrefix != "" {
		return nil
	}

	for _, p := range model.Packages {
		if peers := p.Peers(); len(peers) > 0 {
			return fmt.Errorf("invalid configuration: go.import_prefix (or --go-import-prefix) is required because package %q references package %q", p.Name, peers[0])
		}
	}

	return nil
}
