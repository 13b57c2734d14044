// Package notify implements the session-scoped notification sink: an
// insertion-ordered queue of transient user-facing messages. Components
// push success or error entries; a display surface polls the queue and
// entries expire on their own after a fixed timeout unless dismissed
// earlier. Nothing here is ever persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultTTL is how long an entry stays in the queue before auto-removal.
const DefaultTTL = 4 * time.Second

// Notification is one transient user-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center is the process-wide queue. It is created once at startup and
// injected into every component that raises or displays notifications.
// A zero TTL disables auto-expiry, which tests rely on.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	ttl    time.Duration
	timers map[string]*time.Timer
}

// NewCenter creates a queue with the default display timeout.
func NewCenter() *Center {
	return NewCenterWithTTL(DefaultTTL)
}

// NewCenterWithTTL creates a queue whose entries expire after ttl.
// ttl <= 0 disables expiry.
func NewCenterWithTTL(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Push appends a message and returns its freshly generated id.
func (c *Center) Push(message string, severity Severity) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.items = append(c.items, Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	})
	if c.ttl > 0 {
		c.timers[id] = time.AfterFunc(c.ttl, func() { c.Remove(id) })
	}
	return id
}

// Success pushes a success entry.
func (c *Center) Success(message string) string { return c.Push(message, SeveritySuccess) }

// Error pushes an error entry.
func (c *Center) Error(message string) string { return c.Push(message, SeverityError) }

// Info pushes an info entry.
func (c *Center) Info(message string) string { return c.Push(message, SeverityInfo) }

// Remove deletes an entry by id. Removing an absent id is a no-op, so a
// dismissal racing the expiry timer is harmless.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// List returns the queued entries in insertion order.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of queued entries.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
