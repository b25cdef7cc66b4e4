// Package notify implements the transient notification sink the storefront
// surfaces user-visible messages through. A published notification stays
// active for a fixed visible window plus a short exit transition and is then
// dropped by a fire-and-forget timer. Expiry is a UX concern only; nothing
// may rely on it for correctness.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultVisible = 3 * time.Second
	DefaultExit    = 300 * time.Millisecond
)

// Notifier is the sink the stores publish their messages through.
type Notifier interface {
	Notify(message string)
}

type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Posted  time.Time `json:"posted"`
}

type Hub struct {
	log     logrus.FieldLogger
	visible time.Duration
	exit    time.Duration

	mu     sync.Mutex
	active []Notification
}

// NewHub builds a hub with the given display windows. Non-positive durations
// fall back to the defaults.
func NewHub(log logrus.FieldLogger, visible, exit time.Duration) *Hub {
	if visible <= 0 {
		visible = DefaultVisible
	}
	if exit <= 0 {
		exit = DefaultExit
	}
	return &Hub{log: log, visible: visible, exit: exit}
}

// Notify publishes a message and schedules its dismissal.
func (h *Hub) Notify(message string) {
	n := Notification{
		ID:      uuid.NewString(),
		Message: message,
		Posted:  time.Now().UTC(),
	}

	h.mu.Lock()
	h.active = append(h.active, n)
	h.mu.Unlock()

	h.log.WithField("notification", message).Info("notify")

	time.AfterFunc(h.visible+h.exit, func() { h.dismiss(n.ID) })
}

// Active returns the notifications that have not expired yet, oldest first.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.active))
	copy(out, h.active)
	return out
}

func (h *Hub) dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, n := range h.active {
		if n.ID == id {
			h.active = append(h.active[:i], h.active[i+1:]...)
			return
		}
	}
}
