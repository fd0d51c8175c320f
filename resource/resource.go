// Package resource binds one backend collection to the generic controllers:
// it turns a resource path like "/api/coupons" into the endpoint functions
// listctl expects, speaking the backend's JSON envelopes.
package resource

import (
	"context"
	"net/http"

	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/query"
)

// Resource is the endpoint binding for one paged collection.
type Resource[T any] struct {
	gw   *gateway.Client
	path string
}

func New[T any](gw *gateway.Client, path string) Resource[T] {
	return Resource[T]{gw: gw, path: path}
}

type listEnvelope[T any] struct {
	Success    bool             `json:"success"`
	Items      []T              `json:"items"`
	Pagination query.Pagination `json:"pagination"`
}

// List fetches one page: GET <path>?page&limit&search&<filters>.
func (r Resource[T]) List(ctx context.Context, state query.State) (query.Page[T], error) {
	resp, err := r.gw.Request(ctx, http.MethodGet, r.path, nil, state.Values())
	if err != nil {
		return query.Page[T]{}, err
	}
	var envelope listEnvelope[T]
	if err := resp.JSON(&envelope); err != nil {
		return query.Page[T]{}, err
	}
	return query.NewPage(envelope.Items, envelope.Pagination), nil
}

// Create POSTs a new entity.
func (r Resource[T]) Create(ctx context.Context, payload any) error {
	_, err := r.gw.Request(ctx, http.MethodPost, r.path, payload, nil)
	return err
}

// Update PUTs the entity with the given id.
func (r Resource[T]) Update(ctx context.Context, id string, payload any) error {
	_, err := r.gw.Request(ctx, http.MethodPut, r.path+"/"+id, payload, nil)
	return err
}

// Delete removes the entity with the given id.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.gw.Request(ctx, http.MethodDelete, r.path+"/"+id, nil, nil)
	return err
}

// ToggleStatus flips the entity's activation state server-side.
func (r Resource[T]) ToggleStatus(ctx context.Context, id string) error {
	_, err := r.gw.Request(ctx, http.MethodPatch, r.path+"/"+id+"/toggle-status", nil, nil)
	return err
}

type bulkRequest struct {
	IDs    []string `json:"ids"`
	Update any      `json:"update"`
}

// BulkUpdate applies one change to many entities in a single call.
func (r Resource[T]) BulkUpdate(ctx context.Context, ids []string, payload any) error {
	_, err := r.gw.Request(ctx, http.MethodPatch, r.path+"/bulk", bulkRequest{IDs: ids, Update: payload}, nil)
	return err
}

// Endpoints exposes the full CRUD surface for a list controller.
func (r Resource[T]) Endpoints() listctl.Endpoints[T] {
	return listctl.Endpoints[T]{
		List:         r.List,
		Create:       r.Create,
		Update:       r.Update,
		Delete:       r.Delete,
		ToggleStatus: r.ToggleStatus,
		BulkUpdate:   r.BulkUpdate,
	}
}

// ReadCreateEndpoints exposes list and create only, for append-only
// collections such as the points ledger.
func (r Resource[T]) ReadCreateEndpoints() listctl.Endpoints[T] {
	return listctl.Endpoints[T]{
		List:   r.List,
		Create: r.Create,
	}
}
