package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/okra-platform/lcmgen/internal/codegen"
)

// Languages lists the registered backends
func (c *Controller) Languages(_ context.Context) error {
	for _, lang := range codegen.DefaultRegistry.Languages() {
		if lang == codegen.DefaultLanguage {
			color.New(color.Bold).Fprintf(c.out(), "%s (default)\n", lang)
			continue
		}

		fmt.Fprintln(c.out(), lang)
	}

	return nil
}
