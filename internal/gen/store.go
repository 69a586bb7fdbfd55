package gen

// storeTemplate renders gen/store/<snake>.go: the entity's shared
// in-memory state container, wired with its sort key and searchable
// fields. Without a declared display field the store keeps insertion
// order.
const storeTemplate = `package store

import (
	"github.com/claimdesk/crudgen/pkg/crud"

	"{{.GenImport}}/types"
)

// {{.Name}}Store is the shared in-memory read model for {{.PluralHuman}}.
// It is created once per application lifetime and mutated only through its
// own setters; the sync client keeps it mirroring server state.
type {{.Name}}Store = crud.Store[types.{{.Name}}, *types.{{.Name}}]

{{if .HasDisplay -}}
// New{{.Name}}Store creates an empty store kept sorted by {{.DisplayField}}.
func New{{.Name}}Store() *{{.Name}}Store {
	return crud.NewStore[types.{{.Name}}](
		crud.WithSortKey[types.{{.Name}}]((*types.{{.Name}}).DisplayValue),
		crud.WithSearchFields[types.{{.Name}}]((*types.{{.Name}}).SearchValues),
	)
}
{{- else -}}
// New{{.Name}}Store creates an empty store in insertion order; the config
// declares no {{.DisplayField}} field to sort by.
func New{{.Name}}Store() *{{.Name}}Store {
	return crud.NewStore[types.{{.Name}}](
		crud.WithSearchFields[types.{{.Name}}]((*types.{{.Name}}).SearchValues),
	)
}
{{- end}}
`

func renderStore(m *Model) ([]byte, error) {
	return renderTemplate("store", storeTemplate, m)
}
