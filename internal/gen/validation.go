package gen

// validationTemplate renders gen/validation/<snake>.go: DTO checks over
// the shared validator. The rules themselves live in the struct tags the
// types renderer emits, so both artifacts stay consistent by construction.
const validationTemplate = `package validation

import (
	"github.com/claimdesk/crudgen/pkg/crud"

	"{{.GenImport}}/types"
)

// Validate{{.Name}}Create checks a create payload against the {{.Human}}
// field rules.
func Validate{{.Name}}Create(dto types.{{.Name}}Create) error {
	return crud.ValidateStruct(dto)
}

// Validate{{.Name}}Update checks an update payload; absent fields pass.
func Validate{{.Name}}Update(dto types.{{.Name}}Update) error {
	return crud.ValidateStruct(dto)
}
`

func renderValidation(m *Model) ([]byte, error) {
	return renderTemplate("validation", validationTemplate, m)
}
