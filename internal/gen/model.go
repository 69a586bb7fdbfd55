// Package gen renders the per-entity CRUD artifacts. Every renderer is a
// pure function from the normalized Model to a formatted Go source file;
// consistency between artifacts comes from all name derivation living in
// internal/naming and all shape derivation living in this model.
package gen

import (
	"fmt"
	"strings"

	"github.com/claimdesk/crudgen/internal/config"
	"github.com/claimdesk/crudgen/internal/naming"
)

// RuntimeImport is the import path of the runtime library every generated
// artifact depends on.
const RuntimeImport = "github.com/claimdesk/crudgen/pkg/crud"

// Model is the normalized view of an EntityConfig that templates render
// from. All derived names are precomputed here so no renderer ever applies
// a casing rule on its own.
type Model struct {
	Name        string // "ClaimAgreement"
	Camel       string // "claimAgreement"
	Snake       string // "claim_agreement" — file names, property prefixes
	Kebab       string // "claim-agreement" — URL path segment
	Human       string // "claim agreement" — error messages
	PluralKebab string // "claim-agreements" — dashboard routes
	PluralHuman string // "claim agreements" — page headings

	DisplayField   string // "<snake>_description"
	HasDisplay     bool   // the config declares the display field
	HasGeneratedBy bool   // the config declares a generated_by field

	GenImport string // import path of the generated gen/ tree
	Fields    []Field
}

// Field is one declared attribute with its derived names and rules.
type Field struct {
	Name     string // declared property name, snake_case
	GoName   string // "DateOfLoss"
	Kind     config.FieldKind
	Required bool

	GoType    string // "string", "float64", "int64", "bool", "time.Time", related type
	IsObject  bool
	Related   string // related entity type name for object fields
	Validate  string // `validate` tag for the create DTO
	InputType string // HTML input type for generated forms
}

// goType maps a field kind to the generated Go type.
func goType(f config.Field) string {
	switch f.Type {
	case config.KindNumber:
		return "float64"
	case config.KindInteger:
		return "int64"
	case config.KindBoolean:
		return "bool"
	case config.KindDate:
		return "time.Time"
	case config.KindObject:
		return naming.ToPascal(f.Name)
	default: // string, text, email, phone, url
		return "string"
	}
}

// validateRule maps a field kind to its validation rule family.
func validateRule(f config.Field) string {
	// Presence of a non-pointer bool is structural, and "required" would
	// reject false. Booleans carry no rule.
	if f.Type == config.KindBoolean {
		return ""
	}
	var rules []string
	if f.Required {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "omitempty")
	}
	switch f.Type {
	case config.KindString:
		rules = append(rules, "max=255")
	case config.KindText:
		rules = append(rules, "max=5000")
	case config.KindNumber, config.KindInteger:
		rules = append(rules, "gte=0")
	case config.KindEmail:
		rules = append(rules, "email")
	case config.KindPhone:
		rules = append(rules, "e164")
	case config.KindURL:
		rules = append(rules, "url")
	}
	return strings.Join(rules, ",")
}

// inputType maps a field kind to the HTML input type of generated forms.
func inputType(k config.FieldKind) string {
	switch k {
	case config.KindNumber, config.KindInteger:
		return "number"
	case config.KindBoolean:
		return "checkbox"
	case config.KindDate:
		return "date"
	case config.KindEmail:
		return "email"
	case config.KindPhone:
		return "tel"
	case config.KindURL:
		return "url"
	default:
		return "text"
	}
}

// reserved mirrors the config-level check so programmatic callers cannot
// smuggle a server-assigned field into the generated shapes either.
var reserved = map[string]bool{
	"id": true, "uuid": true, "created_at": true, "updated_at": true, "deleted_at": true,
}

// NewModel normalizes an EntityConfig. genImport is the import path of the
// directory the artifacts are generated into.
func NewModel(cfg *config.EntityConfig, genImport string) (*Model, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("entity name is empty")
	}
	snake := naming.ToSnake(cfg.Name)
	kebab := naming.ToKebab(cfg.Name)
	m := &Model{
		Name:         cfg.Name,
		Camel:        naming.ToCamel(cfg.Name),
		Snake:        snake,
		Kebab:        kebab,
		Human:        strings.ReplaceAll(snake, "_", " "),
		PluralKebab:  naming.Plural(kebab),
		PluralHuman:  naming.Plural(strings.ReplaceAll(snake, "_", " ")),
		DisplayField: snake + "_description",
		GenImport:    genImport,
	}
	for _, f := range cfg.Fields {
		if reserved[f.Name] {
			return nil, fmt.Errorf("field %q is reserved", f.Name)
		}
		fm := Field{
			Name:      f.Name,
			GoName:    naming.ToPascal(f.Name),
			Kind:      f.Type,
			Required:  f.Required,
			GoType:    goType(f),
			IsObject:  f.Type == config.KindObject,
			Validate:  validateRule(f),
			InputType: inputType(f.Type),
		}
		if fm.IsObject {
			fm.Related = naming.ToPascal(f.Name)
		}
		if f.Name == m.DisplayField {
			m.HasDisplay = true
		}
		if f.Name == "generated_by" {
			m.HasGeneratedBy = true
		}
		m.Fields = append(m.Fields, fm)
	}
	return m, nil
}

// UpdateValidate is the validation tag for the field on the update DTO,
// where everything is optional.
func (f Field) UpdateValidate() string {
	return strings.Replace(f.Validate, "required", "omitempty", 1)
}

// Display returns the display field when the config declares one.
func (m *Model) Display() *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == m.DisplayField {
			return &m.Fields[i]
		}
	}
	return nil
}

// GeneratedByField returns the generated_by field when declared; it is one
// of the fixed searchable fields.
func (m *Model) GeneratedByField() *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == "generated_by" {
			return &m.Fields[i]
		}
	}
	return nil
}

// ScalarFields returns the non-object fields, the ones generated forms and
// DTO setters handle directly.
func (m *Model) ScalarFields() []Field {
	var out []Field
	for _, f := range m.Fields {
		if !f.IsObject {
			out = append(out, f)
		}
	}
	return out
}

// NeedsTime reports whether any field maps to time.Time.
func (m *Model) NeedsTime() bool {
	for _, f := range m.Fields {
		if f.Kind == config.KindDate {
			return true
		}
	}
	return false
}
