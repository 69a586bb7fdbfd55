package gen

// clientTemplate renders gen/client/<snake>.go: the base client owning the
// request lifecycle and the sync client that mirrors results into the
// shared store.
const clientTemplate = `package client

import (
	"github.com/claimdesk/crudgen/pkg/crud"

	"{{.GenImport}}/actions"
	"{{.GenImport}}/store"
	"{{.GenImport}}/types"
)

// {{.Name}}Client owns the request lifecycle for {{.PluralHuman}}:
// loading/error state, fetch-on-demand, and refetch after every mutation.
type {{.Name}}Client = crud.Client[types.{{.Name}}, *types.{{.Name}}, types.{{.Name}}Create, types.{{.Name}}Update]

// New{{.Name}}Client creates the base client for {{.PluralHuman}}.
func New{{.Name}}Client(rq *crud.Requester, tokens crud.TokenSource) *{{.Name}}Client {
	return crud.NewClient[types.{{.Name}}, *types.{{.Name}}]("{{.Human}}", actions.{{.Name}}Actions(rq), tokens)
}

// {{.Name}}Sync is the store-mirroring layer over {{.Name}}Client; pages
// consume this one.
type {{.Name}}Sync = crud.SyncClient[types.{{.Name}}, *types.{{.Name}}, types.{{.Name}}Create, types.{{.Name}}Update]

// New{{.Name}}Sync binds a fresh base client to st.
func New{{.Name}}Sync(rq *crud.Requester, tokens crud.TokenSource, st *store.{{.Name}}Store) *{{.Name}}Sync {
	return crud.NewSyncClient(New{{.Name}}Client(rq, tokens), st)
}
`

func renderClient(m *Model) ([]byte, error) {
	return renderTemplate("client", clientTemplate, m)
}
