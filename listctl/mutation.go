package listctl

import (
	"context"

	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
)

// Operation is a write against the entity's collection.
type Operation string

const (
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpDelete       Operation = "delete"
	OpToggleStatus Operation = "toggleStatus"
	OpBulkUpdate   Operation = "bulkUpdate"
)

// Mutation describes one write. ID applies to update/delete/toggleStatus,
// IDs to bulkUpdate, Payload to create/update/bulkUpdate.
type Mutation struct {
	Op      Operation
	ID      string
	IDs     []string
	Payload any
}

// Mutate dispatches the operation to its endpoint. On success it emits a
// success notification and unconditionally reloads; on failure the list is
// left untouched and an error notification carries the server's message.
func (c *Controller[T]) Mutate(ctx context.Context, m Mutation) error {
	if !c.gate.Authenticated() {
		return ierrors.ErrNotAuthenticated
	}

	if err := c.dispatch(ctx, m); err != nil {
		c.log.Warn().Str("op", string(m.Op)).Err(err).Msg("mutation failed")
		c.notices.EmitError(notificationText(err))
		return err
	}

	c.notices.EmitSuccess(c.successText(m.Op))
	return c.Reload(ctx)
}

func (c *Controller[T]) dispatch(ctx context.Context, m Mutation) error {
	switch m.Op {
	case OpCreate:
		if c.endpoints.Create == nil {
			return ierrors.ErrUnsupported
		}
		return c.endpoints.Create(ctx, m.Payload)
	case OpUpdate:
		if c.endpoints.Update == nil {
			return ierrors.ErrUnsupported
		}
		return c.endpoints.Update(ctx, m.ID, m.Payload)
	case OpDelete:
		if c.endpoints.Delete == nil {
			return ierrors.ErrUnsupported
		}
		return c.endpoints.Delete(ctx, m.ID)
	case OpToggleStatus:
		if c.endpoints.ToggleStatus == nil {
			return ierrors.ErrUnsupported
		}
		return c.endpoints.ToggleStatus(ctx, m.ID)
	case OpBulkUpdate:
		if c.endpoints.BulkUpdate == nil {
			return ierrors.ErrUnsupported
		}
		return c.endpoints.BulkUpdate(ctx, m.IDs, m.Payload)
	default:
		return ierrors.Wrapf(ierrors.ErrUnsupported, "unknown operation %q", m.Op)
	}
}

func (c *Controller[T]) successText(op Operation) string {
	switch op {
	case OpCreate:
		return c.noun + " created successfully"
	case OpUpdate:
		return c.noun + " updated successfully"
	case OpDelete:
		return c.noun + " deleted successfully"
	case OpToggleStatus:
		return c.noun + " status updated successfully"
	case OpBulkUpdate:
		return c.noun + "s updated successfully"
	default:
		return "done"
	}
}
