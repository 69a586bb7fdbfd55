// Package config loads and validates the per-entity generation configs
// (crud-config/<name>.json). A config is the single source every generated
// artifact derives its names and shapes from, so validation is strict: no
// defaulting, no silent dropping of bad fields.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// FieldKind is the closed set of declarable field types. Each kind fixes
// both the generated Go type and the validation rule family.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindText    FieldKind = "text"
	KindNumber  FieldKind = "number"
	KindInteger FieldKind = "integer"
	KindBoolean FieldKind = "boolean"
	KindDate    FieldKind = "date"
	KindEmail   FieldKind = "email"
	KindPhone   FieldKind = "phone"
	KindURL     FieldKind = "url"
	KindObject  FieldKind = "object"
)

// Field is one declared entity attribute.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldKind `json:"type"`
	Required bool      `json:"required"`
}

// EntityConfig describes one entity to generate a CRUD slice for.
type EntityConfig struct {
	Name   string  `json:"name"` // PascalCase singular
	Fields []Field `json:"fields"`
}

// reservedFields are server-assigned and always carried by the generated
// record shape; a config may not redeclare them.
var reservedFields = map[string]bool{
	"id": true, "uuid": true, "created_at": true, "updated_at": true, "deleted_at": true,
}

// NotFoundError reports a missing config file along with the configs that
// do exist, as a remediation hint for the operator.
type NotFoundError struct {
	Name      string
	Dir       string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("config %q not found in %s (no configs present)", e.Name, e.Dir)
	}
	return fmt.Sprintf("config %q not found in %s (available: %s)",
		e.Name, e.Dir, strings.Join(e.Available, ", "))
}

// ParseError reports a config file that exists but is malformed or violates
// the schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// schema is the CUE contract every config must satisfy. required has no
// default on purpose: every field must state it explicitly.
const schema = `
#Field: {
	name:     =~"^[a-z][a-z0-9_]*$"
	type:     "string" | "text" | "number" | "integer" | "boolean" | "date" | "email" | "phone" | "url" | "object"
	required: bool
}

#Config: {
	name:   =~"^[A-Z][A-Za-z0-9]*$"
	fields: [...#Field]
}
`

// Load reads and validates dir/<name>.json.
func Load(dir, name string) (*EntityConfig, error) {
	path := filepath.Join(dir, name+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Dir: dir, Available: Available(dir)}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := validateSchema(path, raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var cfg EntityConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := cfg.check(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// validateSchema unifies the raw JSON with the CUE #Config definition.
func validateSchema(path string, raw []byte) error {
	ctx := cuecontext.New()
	sv := ctx.CompileString(schema)
	if sv.Err() != nil {
		return fmt.Errorf("compiling schema: %w", sv.Err())
	}
	expr, err := cuejson.Extract(path, raw)
	if err != nil {
		return err
	}
	dv := ctx.BuildExpr(expr)
	if dv.Err() != nil {
		return dv.Err()
	}
	unified := sv.LookupPath(cue.ParsePath("#Config")).Unify(dv)
	return unified.Validate(cue.Concrete(true))
}

// check enforces the semantic rules the CUE schema cannot express.
func (c *EntityConfig) check() error {
	seen := map[string]bool{}
	for _, f := range c.Fields {
		if reservedFields[f.Name] {
			return fmt.Errorf("field %q is reserved: id, uuid and timestamp fields are server-assigned", f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("field %q declared twice", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Available lists the config names (file base names without .json) present
// in dir, sorted.
func Available(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
