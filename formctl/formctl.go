// Package formctl owns the single-entity draft buffer behind a create/edit
// form. A draft is purely local until Submit: validation failures never
// reach the gateway, and a successful submit hands off to the owning list
// controller so the collection is refetched rather than patched.
package formctl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
	"github.com/jrsteele09/loyalty-admin/listctl"
)

// Template describes how drafts of an entity behave: the empty create-mode
// value, field access by name, and which fields must be non-empty.
// Numeric coercion (blank or unparseable input becoming 0) belongs inside
// Apply, so a half-typed value never faults the form.
type Template[T any] struct {
	Empty    func() T
	ID       func(T) string                 // empty ID means create mode
	Fields   func(T) map[string]string      // current values by field name
	Apply    func(*T, string, string) error // set one field on the draft
	Required []string                       // field names that must be non-empty
}

// ValidationError reports the required fields that are still empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields are empty: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ierrors.ErrValidation
}

// Controller is the form controller for one entity type. At most one draft
// is open at a time.
type Controller[T any] struct {
	template Template[T]
	list     *listctl.Controller[T]

	lock  sync.Mutex
	draft *T
}

// New creates a form controller bound to the list controller it reconciles
// with on successful submits.
func New[T any](template Template[T], list *listctl.Controller[T]) (*Controller[T], error) {
	if template.Empty == nil {
		return nil, errors.New("[formctl.New] Empty template func is required")
	}
	if template.ID == nil {
		return nil, errors.New("[formctl.New] ID func is required")
	}
	if template.Fields == nil {
		return nil, errors.New("[formctl.New] Fields func is required")
	}
	if template.Apply == nil {
		return nil, errors.New("[formctl.New] Apply func is required")
	}
	if list == nil {
		return nil, errors.New("[formctl.New] list controller is required")
	}
	return &Controller[T]{template: template, list: list}, nil
}

// Open starts a draft: a copy of existing (edit mode) or the entity's empty
// template (create mode). Opening over an open draft is an error.
func (c *Controller[T]) Open(existing *T) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.draft != nil {
		return ierrors.ErrDraftOpen
	}

	var draft T
	if existing != nil {
		draft = *existing
	} else {
		draft = c.template.Empty()
	}
	c.draft = &draft
	return nil
}

// Draft returns a copy of the open draft, if any.
func (c *Controller[T]) Draft() (T, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.draft == nil {
		var zero T
		return zero, false
	}
	return *c.draft, true
}

// SetField mutates one field of the open draft. Local only; no server call.
func (c *Controller[T]) SetField(name, value string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.draft == nil {
		return ierrors.ErrNoDraft
	}
	return c.template.Apply(c.draft, name, value)
}

// Cancel discards the draft unconditionally. No partial server state can
// exist, so no confirmation step is needed.
func (c *Controller[T]) Cancel() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.draft = nil
}

// Submit validates the draft, then creates or updates through the list
// controller. Validation failures keep the draft open and never reach the
// gateway; remote failures also keep the draft open (the list controller
// has already surfaced the error). Success closes the draft, and the list
// controller's reload-after-mutate refreshes the collection.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.lock.Lock()
	if c.draft == nil {
		c.lock.Unlock()
		return ierrors.ErrNoDraft
	}
	draft := *c.draft
	c.lock.Unlock()

	if missing := c.missingRequired(draft); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	mutation := listctl.Mutation{Op: listctl.OpCreate, Payload: draft}
	if id := c.template.ID(draft); id != "" {
		mutation = listctl.Mutation{Op: listctl.OpUpdate, ID: id, Payload: draft}
	}

	if err := c.list.Mutate(ctx, mutation); err != nil {
		return err
	}

	c.lock.Lock()
	c.draft = nil
	c.lock.Unlock()
	return nil
}

func (c *Controller[T]) missingRequired(draft T) []string {
	fields := c.template.Fields(draft)
	var missing []string
	for _, name := range c.template.Required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
