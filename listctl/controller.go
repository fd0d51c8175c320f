// Package listctl owns paged collection state for one entity type: the
// current query, the latest server snapshot, loading/error surfacing, and
// mutation dispatch. Writes never patch the local page — every successful
// mutation is followed by a full reload so the visible list always reflects
// one consistent server snapshot (reload-after-mutate).
package listctl

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/loyalty-admin/gateway"
	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
)

// Gate reports whether operations may reach the backend. Implemented by the
// session store; everything fails fast when the session is not verified.
type Gate interface {
	Authenticated() bool
}

// Endpoints supplies the entity's remote operations. List is mandatory;
// a nil mutation endpoint makes that operation unsupported (transactions,
// for instance, are list-and-create only).
type Endpoints[T any] struct {
	List         func(ctx context.Context, state query.State) (query.Page[T], error)
	Create       func(ctx context.Context, payload any) error
	Update       func(ctx context.Context, id string, payload any) error
	Delete       func(ctx context.Context, id string) error
	ToggleStatus func(ctx context.Context, id string) error
	BulkUpdate   func(ctx context.Context, ids []string, payload any) error
}

// Controller is the list controller for one entity type.
type Controller[T any] struct {
	endpoints Endpoints[T]
	gate      Gate
	notices   *notify.Channel
	log       zerolog.Logger
	noun      string

	lock    sync.Mutex
	state   query.State
	page    query.Page[T]
	pending int
	seq     uint64 // last issued reload sequence
	applied uint64 // newest sequence whose response was applied
}

// ControllerOption modifies a Controller.
type ControllerOption[T any] func(*Controller[T])

// WithNoun sets the entity name used in notification texts (e.g. "Coupon").
func WithNoun[T any](noun string) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.noun = noun
	}
}

// WithLogger sets the controller's logger.
func WithLogger[T any](log zerolog.Logger) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.log = log
	}
}

// New creates a list controller with the given endpoints and initial query.
func New[T any](endpoints Endpoints[T], gate Gate, notices *notify.Channel, initial query.State, options ...ControllerOption[T]) (*Controller[T], error) {
	if endpoints.List == nil {
		return nil, errors.New("[listctl.New] List endpoint is required")
	}
	if gate == nil {
		return nil, errors.New("[listctl.New] gate is required")
	}
	if notices == nil {
		return nil, errors.New("[listctl.New] notification channel is required")
	}
	if initial.Page < 1 {
		initial = query.NewState(initial.Limit)
	}

	c := &Controller[T]{
		endpoints: endpoints,
		gate:      gate,
		notices:   notices,
		state:     initial,
		noun:      "Item",
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Query returns the current query state.
func (c *Controller[T]) Query() query.State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Page returns the latest applied server snapshot.
func (c *Controller[T]) Page() query.Page[T] {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.page
}

// Loading reports whether a reload is in flight.
func (c *Controller[T]) Loading() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.pending > 0
}

// SetQuery merges a partial update into the query state and reloads. Any
// change other than the page number resets the page to 1. When the session
// is not authenticated the update is refused and the stored query state is
// left untouched.
func (c *Controller[T]) SetQuery(ctx context.Context, u query.Update) error {
	if !c.gate.Authenticated() {
		return ierrors.ErrNotAuthenticated
	}
	c.lock.Lock()
	c.state = c.state.Merge(u)
	c.lock.Unlock()
	return c.Reload(ctx)
}

// Reload fetches the page described by the current query state. On success
// the snapshot is replaced wholesale; on failure the previous snapshot is
// preserved and an error notification is emitted. Responses that arrive
// after a newer reload has already been applied are discarded.
func (c *Controller[T]) Reload(ctx context.Context) error {
	if !c.gate.Authenticated() {
		return ierrors.ErrNotAuthenticated
	}

	c.lock.Lock()
	c.seq++
	mySeq := c.seq
	state := c.state
	c.pending++
	c.lock.Unlock()

	page, err := c.endpoints.List(ctx, state)

	c.lock.Lock()
	c.pending--
	if err != nil {
		c.lock.Unlock()
		c.log.Warn().Err(err).Msg("reload failed, keeping previous page")
		c.notices.EmitError(notificationText(err))
		return err
	}
	if mySeq < c.applied {
		c.lock.Unlock()
		c.log.Debug().Uint64("seq", mySeq).Uint64("applied", c.applied).Msg("discarding stale reload response")
		return nil
	}
	c.applied = mySeq
	c.page = page
	c.lock.Unlock()
	return nil
}

// notificationText surfaces the server's message when the gateway captured
// one, and a generic failure text otherwise.
func notificationText(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return "something went wrong, please try again"
}
