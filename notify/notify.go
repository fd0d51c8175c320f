// Package notify is the single-slot transient message surfaced to the user.
// The next Emit overwrites the slot; there is no queue and no history.
package notify

import "sync"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Notification struct {
	Kind Kind
	Text string
}

// Channel holds at most one visible notification.
type Channel struct {
	lock      sync.RWMutex
	current   *Notification
	listeners []func(Notification)
}

func NewChannel() *Channel {
	return &Channel{}
}

// Emit replaces the current slot and informs subscribers.
func (c *Channel) Emit(kind Kind, text string) {
	notification := Notification{Kind: kind, Text: text}

	c.lock.Lock()
	c.current = &notification
	listeners := make([]func(Notification), len(c.listeners))
	copy(listeners, c.listeners)
	c.lock.Unlock()

	for _, listener := range listeners {
		listener(notification)
	}
}

func (c *Channel) EmitSuccess(text string) {
	c.Emit(Success, text)
}

func (c *Channel) EmitError(text string) {
	c.Emit(Error, text)
}

// Current returns the visible notification, or nil when the slot is empty.
func (c *Channel) Current() *Notification {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.current == nil {
		return nil
	}
	current := *c.current
	return &current
}

// Clear empties the slot.
func (c *Channel) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.current = nil
}

// Subscribe registers a listener for every future Emit.
func (c *Channel) Subscribe(listener func(Notification)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.listeners = append(c.listeners, listener)
}
