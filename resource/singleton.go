package resource

import (
	"context"
	"net/http"

	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/listctl"
)

// Singleton is the endpoint binding for a one-per-business document
// (profile, theme). The backend returns it under a "data" key.
type Singleton[T any] struct {
	gw   *gateway.Client
	path string
}

func NewSingleton[T any](gw *gateway.Client, path string) Singleton[T] {
	return Singleton[T]{gw: gw, path: path}
}

type documentEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Fetch GETs the document.
func (s Singleton[T]) Fetch(ctx context.Context) (T, error) {
	var zero T
	resp, err := s.gw.Request(ctx, http.MethodGet, s.path, nil, nil)
	if err != nil {
		return zero, err
	}
	var envelope documentEnvelope[T]
	if err := resp.JSON(&envelope); err != nil {
		return zero, err
	}
	return envelope.Data, nil
}

// Update PUTs the document.
func (s Singleton[T]) Update(ctx context.Context, payload any) error {
	_, err := s.gw.Request(ctx, http.MethodPut, s.path, payload, nil)
	return err
}

// Endpoints exposes the document for a singleton controller.
func (s Singleton[T]) Endpoints() listctl.SingletonEndpoints[T] {
	return listctl.SingletonEndpoints[T]{
		Fetch:  s.Fetch,
		Update: s.Update,
	}
}
