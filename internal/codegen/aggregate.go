package codegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// unformattedSuffix names the sidecar holding a file the formatter rejected
const unformattedSuffix = ".unformatted"

// Aggregator writes one aggregate file per schema package below a root
// directory. Files are rebuilt from scratch on every run in separate passes
// so that all declarations of a package precede all behavior.
type Aggregator struct {
	backend Backend
	root    string
	logger  zerolog.Logger
}

// NewAggregator creates an aggregator writing the output of b below root
func NewAggregator(b Backend, root string, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		backend: b,
		root:    root,
		logger:  logger.With().Str("component", "aggregator").Str("language", b.Language()).Logger(),
	}
}

// Path returns the aggregate file of a dotted package name
func (a *Aggregator) Path(pkg string) string {
	return filepath.Join(a.root, filepath.FromSlash(naming.PackageDir(pkg)), a.backend.FileName())
}

// Run regenerates the files of every package that has at least one struct
// and returns their paths in model order. The first failure aborts the run;
// files of packages already processed by the failing pass stay as written.
func (a *Aggregator) Run(model *schema.Model) ([]string, error) {
	var pkgs []*schema.Package
	for _, p := range model.Packages {
		if len(p.Structs) > 0 {
			pkgs = append(pkgs, p)
		}
	}

	if err := a.removeStale(pkgs); err != nil {
		return nil, a.fail("remove", err)
	}

	files, err := a.writeHeaders(pkgs)
	if err != nil {
		return nil, a.fail("header", err)
	}

	if err := a.appendPass(pkgs, a.backend.Declaration); err != nil {
		return nil, a.fail("declaration", err)
	}

	if err := a.appendPass(pkgs, a.backend.Behavior); err != nil {
		return nil, a.fail("behavior", err)
	}

	if f, ok := a.backend.(Formatter); ok {
		for _, path := range files {
			if err := a.format(f, path); err != nil {
				return nil, a.fail("format", err)
			}
		}
	}

	a.logger.Info().Int("files", len(files)).Str("root", a.root).Msg("Generation complete")

	return files, nil
}

func (a *Aggregator) fail(pass string, err error) error {
	a.logger.Error().Err(err).Str("pass", pass).Msg("Generation aborted")
	return err
}

func (a *Aggregator) removeStale(pkgs []*schema.Package) error {
	for _, p := range pkgs {
		path := a.Path(p.Name)
		for _, stale := range []string{path, path + unformattedSuffix} {
			err := os.Remove(stale)
			switch {
			case err == nil:
				a.logger.Debug().Str("path", stale).Msg("Removed file")
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("failed to remove %s: %w", stale, err)
			}
		}
	}

	return nil
}

func (a *Aggregator) writeHeaders(pkgs []*schema.Package) ([]string, error) {
	created := make(map[string]bool)

	var files []string
	for _, p := range pkgs {
		path := a.Path(p.Name)
		if created[path] {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}

		header, err := a.backend.Header(p)
		if err != nil {
			return nil, fmt.Errorf("failed to render header of package %q: %w", p.Name, err)
		}

		if err := os.WriteFile(path, header, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}

		a.logger.Debug().Str("path", path).Msg("Created file")
		created[path] = true
		files = append(files, path)
	}

	return files, nil
}

type renderFunc func(pkg *schema.Package, s *schema.Struct) ([]byte, error)

// appendPass renders every struct once, in model order, and appends the
// result to its package file.
func (a *Aggregator) appendPass(pkgs []*schema.Package, render renderFunc) error {
	emitted := make(map[string]bool)

	for _, p := range pkgs {
		var chunks [][]byte
		for _, s := range p.Structs {
			name := s.Name.Full()
			if emitted[name] {
				a.logger.Warn().Str("struct", name).Msg("Skipping duplicate struct")
				continue
			}
			emitted[name] = true

			chunk, err := render(p, s)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", name, err)
			}
			chunks = append(chunks, chunk)
		}

		if err := appendFile(a.Path(p.Name), chunks); err != nil {
			return err
		}
	}

	return nil
}

func appendFile(path string, chunks [][]byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	for _, chunk := range chunks {
		if _, err := f.Write(chunk); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}

// format rewrites a finished file through the backend formatter. A file the
// formatter rejects is kept next to the output for inspection.
func (a *Aggregator) format(f Formatter, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, err := f.Format(path, src)
	if err != nil {
		sidecar := path + unformattedSuffix
		if werr := os.WriteFile(sidecar, src, 0o644); werr != nil {
			a.logger.Warn().Err(werr).Str("path", sidecar).Msg("Failed to write unformatted output")
		}

		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
