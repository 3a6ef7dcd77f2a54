package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/okra-platform/lcmgen/internal/codegen"
)

// ErrDrift is returned by Check when the output root is not up to date
var ErrDrift = errors.New("generated files are out of date")

// Check regenerates into a scratch directory and compares the result with
// the files in the output root. Differences are printed as line diffs.
func (c *Controller) Check(ctx context.Context) error {
	cfg, _, err := c.loadConfig()
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "lcmgen-check-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	files, err := c.generate(ctx, cfg, scratch)
	if err != nil {
		return err
	}

	stale := 0
	produced := make(map[string]bool)
	for _, f := range files {
		rel, err := filepath.Rel(scratch, f)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", f, err)
		}
		produced[rel] = true

		want, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f, err)
		}

		target := filepath.Join(cfg.Output, rel)
		have, err := os.ReadFile(target)
		if errors.Is(err, os.ErrNotExist) {
			color.New(color.FgRed).Fprintf(c.out(), "missing %s\n", target)
			stale++
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", target, err)
		}

		if string(have) == string(want) {
			continue
		}

		stale++
		writeDiff(c.out(), target, string(have), string(want))
	}

	backend, err := codegen.DefaultRegistry.Get(cfg.Language, options(cfg))
	if err != nil {
		return err
	}

	leftovers, err := leftoverFiles(cfg.Output, backend.FileName(), produced)
	if err != nil {
		return err
	}
	for _, f := range leftovers {
		color.New(color.FgRed).Fprintf(c.out(), "stale %s\n", f)
		stale++
	}

	if stale > 0 {
		return fmt.Errorf("%w: %d file(s) differ", ErrDrift, stale)
	}

	fmt.Fprintf(c.out(), "%d file(s) up to date\n", len(files))

	return nil
}

// leftoverFiles returns the aggregate files below root that a run did not
// produce, such as the file of a package removed from the schema.
func leftoverFiles(root, fileName string, produced map[string]bool) ([]string, error) {
	var leftovers []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipAll
			}
			return err
		}

		if d.IsDir() || d.Name() != fileName {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if !produced[rel] {
			leftovers = append(leftovers, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return leftovers, nil
}

// writeDiff prints the lines removed from have and added in want
func writeDiff(w io.Writer, name, have, want string) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(have, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	bold := color.New(color.Bold)
	bold.Fprintf(w, "--- %s\n", name)
	bold.Fprintf(w, "+++ %s (generated)\n", name)

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, d := range diffs {
		var (
			prefix string
			c      *color.Color
		)

		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, c = "-", red
		case diffpatch.DiffInsert:
			prefix, c = "+", green
		default:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			c.Fprint(w, prefix+strings.TrimSuffix(line, "\n")+"\n")
		}
	}
}
