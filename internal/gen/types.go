package gen

// typesTemplate renders gen/types/<snake>.go: the record shape, the
// create/update DTOs and the accessors the other artifacts hang off.
// Identity and timestamp fields come from the embedded crud.Meta and are
// never part of the create shape, whatever the field list says.
const typesTemplate = `package types

import (
	"strconv"
{{- if .NeedsTime}}
	"time"
{{- end}}

	"github.com/claimdesk/crudgen/pkg/crud"
)

// {{.Name}} is the full record shape for one {{.Human}}.
type {{.Name}} struct {
	crud.Meta
{{- range .Fields}}
{{- if .IsObject}}
	{{.GoName}} *{{.Related}} {{bt}}json:"{{.Name}},omitempty"{{bt}}
{{- else if .Required}}
	{{.GoName}} {{.GoType}} {{bt}}json:"{{.Name}}"{{bt}}
{{- else}}
	{{.GoName}} *{{.GoType}} {{bt}}json:"{{.Name}},omitempty"{{bt}}
{{- end}}
{{- end}}
}

// {{.Name}}Create is the create payload. The server assigns id, uuid and
// the timestamp fields; they are never part of this shape.
type {{.Name}}Create struct {
{{- range .Fields}}
{{- if .IsObject}}
	{{.GoName}} *{{.Related}} {{bt}}json:"{{.Name}},omitempty" validate:"{{.Validate}}"{{bt}}
{{- else if .Required}}
	{{.GoName}} {{.GoType}} {{bt}}json:"{{.Name}}"{{if .Validate}} validate:"{{.Validate}}"{{end}}{{bt}}
{{- else}}
	{{.GoName}} *{{.GoType}} {{bt}}json:"{{.Name}},omitempty"{{if .Validate}} validate:"{{.Validate}}"{{end}}{{bt}}
{{- end}}
{{- end}}
}

// {{.Name}}Update is the partial update payload; every field is optional.
type {{.Name}}Update struct {
{{- range .Fields}}
{{- if .IsObject}}
	{{.GoName}} *{{.Related}} {{bt}}json:"{{.Name}},omitempty"{{bt}}
{{- else}}
	{{.GoName}} *{{.GoType}} {{bt}}json:"{{.Name}},omitempty"{{if .UpdateValidate}} validate:"{{.UpdateValidate}}"{{end}}{{bt}}
{{- end}}
{{- end}}
}

// Apply merges the non-nil fields of u into the record.
func (e *{{.Name}}) Apply(u {{.Name}}Update) {
{{- range .Fields}}
{{- if or .IsObject (not .Required)}}
	if u.{{.GoName}} != nil {
		e.{{.GoName}} = u.{{.GoName}}
	}
{{- else}}
	if u.{{.GoName}} != nil {
		e.{{.GoName}} = *u.{{.GoName}}
	}
{{- end}}
{{- end}}
}

// DisplayValue returns the value lists are sorted and labeled by.
func (e *{{.Name}}) DisplayValue() string {
{{- if .Display}}
{{- if .Display.Required}}
	return e.{{.Display.GoName}}
{{- else}}
	if e.{{.Display.GoName}} == nil {
		return ""
	}
	return *e.{{.Display.GoName}}
{{- end}}
{{- else}}
	return e.EntityUUID()
{{- end}}
}

// SearchValues returns the values the store search matches against.
func (e *{{.Name}}) SearchValues() []string {
	values := []string{e.DisplayValue(), e.EntityUUID()}
	if e.ID != nil {
		values = append(values, strconv.FormatInt(*e.ID, 10))
	}
{{- if .GeneratedByField}}
{{- if .GeneratedByField.Required}}
	values = append(values, e.GeneratedBy)
{{- else}}
	if e.GeneratedBy != nil {
		values = append(values, *e.GeneratedBy)
	}
{{- end}}
{{- end}}
	return values
}
`

func renderTypes(m *Model) ([]byte, error) {
	return renderTemplate("types", typesTemplate, m)
}
