package gen

// actionsTemplate renders gen/actions/<snake>.go: one named function per
// REST operation, all routed through the shared crud.Requester so the
// bearer token and CSRF header are attached in exactly one place.
const actionsTemplate = `package actions

import (
	"context"

	"github.com/claimdesk/crudgen/pkg/crud"

	"{{.GenImport}}/types"
)

// {{.Name}}Actions binds the /api/{{.Kebab}} endpoint convention.
func {{.Name}}Actions(rq *crud.Requester) crud.Actions[types.{{.Name}}, types.{{.Name}}Create, types.{{.Name}}Update] {
	return crud.NewActions[types.{{.Name}}, types.{{.Name}}Create, types.{{.Name}}Update](rq, "{{.Kebab}}")
}

// Fetch{{.Name}}Data lists all {{.PluralHuman}}. GET /api/{{.Kebab}}
func Fetch{{.Name}}Data(ctx context.Context, rq *crud.Requester, token string) (crud.ListResponse[types.{{.Name}}], error) {
	return {{.Name}}Actions(rq).List(ctx, token)
}

// Get{{.Name}}Data fetches one {{.Human}} by uuid. GET /api/{{.Kebab}}/<uuid>
func Get{{.Name}}Data(ctx context.Context, rq *crud.Requester, token, uuid string) (crud.GetResponse[types.{{.Name}}], error) {
	return {{.Name}}Actions(rq).Get(ctx, token, uuid)
}

// Create{{.Name}}Data creates a {{.Human}}. POST /api/{{.Kebab}}/store
func Create{{.Name}}Data(ctx context.Context, rq *crud.Requester, token string, dto types.{{.Name}}Create) (crud.MutateResponse[types.{{.Name}}], error) {
	return {{.Name}}Actions(rq).Create(ctx, token, dto)
}

// Update{{.Name}}Data updates a {{.Human}}. PATCH /api/{{.Kebab}}/update/<uuid>
func Update{{.Name}}Data(ctx context.Context, rq *crud.Requester, token, uuid string, dto types.{{.Name}}Update) (crud.MutateResponse[types.{{.Name}}], error) {
	return {{.Name}}Actions(rq).Update(ctx, token, uuid, dto)
}

// Delete{{.Name}}Data soft-deletes a {{.Human}}. DELETE /api/{{.Kebab}}/delete/<uuid>
func Delete{{.Name}}Data(ctx context.Context, rq *crud.Requester, token, uuid string) (crud.DeleteResponse, error) {
	return {{.Name}}Actions(rq).Delete(ctx, token, uuid)
}

// Restore{{.Name}}Data clears a {{.Human}}'s soft delete. PUT /api/{{.Kebab}}/restore/<uuid>
func Restore{{.Name}}Data(ctx context.Context, rq *crud.Requester, token, uuid string) (crud.MutateResponse[types.{{.Name}}], error) {
	return {{.Name}}Actions(rq).Restore(ctx, token, uuid)
}
`

func renderActions(m *Model) ([]byte, error) {
	return renderTemplate("actions", actionsTemplate, m)
}
