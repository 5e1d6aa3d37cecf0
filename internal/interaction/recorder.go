package interaction

import (
	"context"
	"sync"
)

// Recorder keeps every notification and answered choice before forwarding
// to an inner Interaction. It is the source of persisted combat logs.
type Recorder struct {
	inner Interaction

	mu            sync.Mutex
	notifications []Notification
	choices       []Choice
}

// NewRecorder wraps inner.
//
// Precondition: inner must not be nil.
func NewRecorder(inner Interaction) *Recorder { return &Recorder{inner: inner} }

// Notify implements Interaction.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
	r.inner.Notify(n)
}

// Prompt implements Interaction. Only in-range answers are recorded.
func (r *Recorder) Prompt(ctx context.Context, p Prompt, choices []Choice) (int, error) {
	idx, err := r.inner.Prompt(ctx, p, choices)
	if err == nil && idx >= 0 && idx < len(choices) {
		r.mu.Lock()
		r.choices = append(r.choices, choices[idx])
		r.mu.Unlock()
	}
	return idx, err
}

// Notifications returns a copy of the recorded notifications.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Choices returns a copy of the recorded answers.
func (r *Recorder) Choices() []Choice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Choice, len(r.choices))
	copy(out, r.choices)
	return out
}

// OfKind returns the recorded notifications of kind, in order.
func (r *Recorder) OfKind(kind NotificationKind) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.notifications {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
