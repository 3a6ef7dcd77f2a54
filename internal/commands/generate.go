package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
)

// Generate writes the package files for the configured schema
func (c *Controller) Generate(ctx context.Context) error {
	cfg, _, err := c.loadConfig()
	if err != nil {
		return err
	}

	files, err := c.generate(ctx, cfg, cfg.Output)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	for _, f := range files {
		green.Fprintf(c.out(), "wrote %s\n", f)
	}

	fmt.Fprintf(c.out(), "%d file(s) generated for %s\n", len(files), cfg.Language)

	return nil
}
