package crud

import (
	"context"
	"net/http"
)

// Actions bundles the six REST operations for one entity. Generated action
// files expose named per-operation functions on top of this bundle so the
// path convention lives in exactly one place.
type Actions[T, C, U any] struct {
	List    func(ctx context.Context, token string) (ListResponse[T], error)
	Get     func(ctx context.Context, token, uuid string) (GetResponse[T], error)
	Create  func(ctx context.Context, token string, dto C) (MutateResponse[T], error)
	Update  func(ctx context.Context, token, uuid string, dto U) (MutateResponse[T], error)
	Delete  func(ctx context.Context, token, uuid string) (DeleteResponse, error)
	Restore func(ctx context.Context, token, uuid string) (MutateResponse[T], error)
}

// NewActions binds the fixed URL convention for one entity:
//
//	GET    /api/<kebab>                collection
//	GET    /api/<kebab>/<uuid>
//	POST   /api/<kebab>/store
//	PATCH  /api/<kebab>/update/<uuid>
//	DELETE /api/<kebab>/delete/<uuid>
//	PUT    /api/<kebab>/restore/<uuid>
func NewActions[T, C, U any](rq *Requester, kebab string) Actions[T, C, U] {
	base := "/api/" + kebab
	return Actions[T, C, U]{
		List: func(ctx context.Context, token string) (ListResponse[T], error) {
			var out ListResponse[T]
			err := rq.Do(ctx, http.MethodGet, base, token, nil, &out)
			return out, err
		},
		Get: func(ctx context.Context, token, uuid string) (GetResponse[T], error) {
			var out GetResponse[T]
			err := rq.Do(ctx, http.MethodGet, base+"/"+uuid, token, nil, &out)
			return out, err
		},
		Create: func(ctx context.Context, token string, dto C) (MutateResponse[T], error) {
			var out MutateResponse[T]
			err := rq.Do(ctx, http.MethodPost, base+"/store", token, dto, &out)
			return out, err
		},
		Update: func(ctx context.Context, token, uuid string, dto U) (MutateResponse[T], error) {
			var out MutateResponse[T]
			err := rq.Do(ctx, http.MethodPatch, base+"/update/"+uuid, token, dto, &out)
			return out, err
		},
		Delete: func(ctx context.Context, token, uuid string) (DeleteResponse, error) {
			var out DeleteResponse
			err := rq.Do(ctx, http.MethodDelete, base+"/delete/"+uuid, token, nil, &out)
			return out, err
		},
		Restore: func(ctx context.Context, token, uuid string) (MutateResponse[T], error) {
			var out MutateResponse[T]
			err := rq.Do(ctx, http.MethodPut, base+"/restore/"+uuid, token, nil, &out)
			return out, err
		},
	}
}
