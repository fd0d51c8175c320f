package listctl

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
	"github.com/jrsteele09/loyalty-admin/notify"
)

// SingletonEndpoints supplies the remote operations for a one-per-business
// resource (profile, theme): no pagination, fetch and update only.
type SingletonEndpoints[T any] struct {
	Fetch  func(ctx context.Context) (T, error)
	Update func(ctx context.Context, payload any) error
}

// SingletonController follows the same reload-after-mutate policy as the
// list controller, for resources that are a single document rather than a
// collection.
type SingletonController[T any] struct {
	endpoints SingletonEndpoints[T]
	gate      Gate
	notices   *notify.Channel
	log       zerolog.Logger
	noun      string

	lock    sync.Mutex
	value   T
	loaded  bool
	pending int
}

// SingletonOption modifies a SingletonController.
type SingletonOption[T any] func(*SingletonController[T])

func WithSingletonNoun[T any](noun string) SingletonOption[T] {
	return func(c *SingletonController[T]) {
		c.noun = noun
	}
}

func WithSingletonLogger[T any](log zerolog.Logger) SingletonOption[T] {
	return func(c *SingletonController[T]) {
		c.log = log
	}
}

func NewSingleton[T any](endpoints SingletonEndpoints[T], gate Gate, notices *notify.Channel, options ...SingletonOption[T]) (*SingletonController[T], error) {
	if endpoints.Fetch == nil {
		return nil, errors.New("[listctl.NewSingleton] Fetch endpoint is required")
	}
	if gate == nil {
		return nil, errors.New("[listctl.NewSingleton] gate is required")
	}
	if notices == nil {
		return nil, errors.New("[listctl.NewSingleton] notification channel is required")
	}

	c := &SingletonController[T]{
		endpoints: endpoints,
		gate:      gate,
		notices:   notices,
		noun:      "Record",
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Value returns the latest fetched document and whether one has loaded.
func (c *SingletonController[T]) Value() (T, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.value, c.loaded
}

// Loading reports whether a fetch is in flight.
func (c *SingletonController[T]) Loading() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.pending > 0
}

// Reload refetches the document. On failure the previous value is kept.
func (c *SingletonController[T]) Reload(ctx context.Context) error {
	if !c.gate.Authenticated() {
		return ierrors.ErrNotAuthenticated
	}

	c.lock.Lock()
	c.pending++
	c.lock.Unlock()

	value, err := c.endpoints.Fetch(ctx)

	c.lock.Lock()
	c.pending--
	if err != nil {
		c.lock.Unlock()
		c.log.Warn().Err(err).Msg("fetch failed, keeping previous value")
		c.notices.EmitError(notificationText(err))
		return err
	}
	c.value = value
	c.loaded = true
	c.lock.Unlock()
	return nil
}

// Update submits the payload, then refetches on success.
func (c *SingletonController[T]) Update(ctx context.Context, payload any) error {
	if !c.gate.Authenticated() {
		return ierrors.ErrNotAuthenticated
	}
	if c.endpoints.Update == nil {
		return ierrors.ErrUnsupported
	}

	if err := c.endpoints.Update(ctx, payload); err != nil {
		c.log.Warn().Err(err).Msg("update failed")
		c.notices.EmitError(notificationText(err))
		return err
	}

	c.notices.EmitSuccess(c.noun + " updated successfully")
	return c.Reload(ctx)
}
