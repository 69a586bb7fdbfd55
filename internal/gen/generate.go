package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/claimdesk/crudgen/internal/config"
	"github.com/claimdesk/crudgen/internal/naming"
)

// Options controls where the artifacts land and how progress is reported.
type Options struct {
	// OutDir is the directory the artifact tree is written under.
	OutDir string
	// Pkg is the Go import path of OutDir, used for the cross-package
	// imports inside the generated code.
	Pkg string
	// Logf reports each written file. Nil disables reporting.
	Logf func(format string, args ...interface{})
}

// artifact is one generated file. Renderers are pure so they can be tested
// without touching the filesystem.
type artifact struct {
	name   string
	render func(*Model) ([]byte, error)
	rel    func(*Model) string
}

// artifacts is the fixed generation order. Types come first so every later
// artifact can assume the record shape exists.
var artifacts = []artifact{
	{"types", renderTypes, func(m *Model) string { return filepath.Join("types", m.Snake+".go") }},
	{"store", renderStore, func(m *Model) string { return filepath.Join("store", m.Snake+".go") }},
	{"actions", renderActions, func(m *Model) string { return filepath.Join("actions", m.Snake+".go") }},
	{"client", renderClient, func(m *Model) string { return filepath.Join("client", m.Snake+".go") }},
	{"validation", renderValidation, func(m *Model) string { return filepath.Join("validation", m.Snake+".go") }},
	{"views", renderViews, func(m *Model) string { return filepath.Join("views", m.Snake+".go") }},
	{"pages", renderPages, func(m *Model) string { return filepath.Join("views", m.Snake+"_pages.go") }},
}

// Manifest lists what a Generate call produced.
type Manifest struct {
	Entity string
	Files  []string
}

// Generate renders the full artifact set for one entity config and writes
// it under opts.OutDir. Generation stops at the first failing artifact; a
// gofmt failure still writes the unformatted source so it can be inspected.
func Generate(cfg *config.EntityConfig, opts Options) (*Manifest, error) {
	m, err := NewModel(cfg, opts.Pkg)
	if err != nil {
		return nil, err
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	man := &Manifest{Entity: cfg.Name}
	for _, a := range artifacts {
		rel := a.rel(m)
		path := filepath.Join(opts.OutDir, rel)
		src, err := a.render(m)
		if err != nil {
			if len(src) > 0 {
				// Leave the broken output on disk for debugging.
				if werr := writeFile(path, src); werr == nil {
					logf("wrote unformatted %s", rel)
				}
			}
			return nil, fmt.Errorf("%s: rendering %s: %w", cfg.Name, a.name, err)
		}
		if err := writeFile(path, src); err != nil {
			return nil, fmt.Errorf("%s: writing %s: %w", cfg.Name, a.name, err)
		}
		logf("generated %s", rel)
		man.Files = append(man.Files, rel)
	}
	return man, nil
}

// GenerateAll runs Generate for every named config in dir.
func GenerateAll(dir string, names []string, opts Options) ([]*Manifest, error) {
	var out []*Manifest
	for _, name := range names {
		cfg, err := config.Load(dir, name)
		if err != nil {
			return out, err
		}
		man, err := Generate(cfg, opts)
		if err != nil {
			return out, err
		}
		out = append(out, man)
	}
	return out, nil
}

func writeFile(path string, src []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, src, 0o644)
}

// RouteBase returns the dashboard mount point for an entity name, mirroring
// what the generated page registration uses.
func RouteBase(entity string) string {
	return "/dashboard/" + naming.ToKebab(naming.Plural(entity))
}
