package interaction

import (
	"context"
	"sync"
)

// Event is one message sent from a session to a Bridge consumer. Exactly
// one of Notification and Prompt is set.
type Event struct {
	Notification *Notification
	Prompt       *PromptEvent
}

// PromptEvent is a pending decision; the consumer replies with Bridge.Answer.
type PromptEvent struct {
	Prompt  Prompt
	Choices []Choice
}

// Bridge routes a session's traffic over Go channels so a combat running in
// one goroutine can be driven from another.
type Bridge struct {
	events  chan Event
	answers chan int
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewBridge creates a Bridge whose event channel buffers bufferSize events.
//
// Postcondition: Returns an open Bridge. A non-positive bufferSize becomes 64.
func NewBridge(bufferSize int) *Bridge {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Bridge{
		events:  make(chan Event, bufferSize),
		answers: make(chan int),
		done:    make(chan struct{}),
	}
}

// Events returns the read-only event channel.
func (b *Bridge) Events() <-chan Event { return b.events }

// Done is closed when the Bridge is closed.
func (b *Bridge) Done() <-chan struct{} { return b.done }

// Notify implements Interaction. It blocks while the buffer is full and
// drops n once the Bridge is closed.
func (b *Bridge) Notify(n Notification) {
	select {
	case b.events <- Event{Notification: &n}:
	case <-b.done:
	}
}

// Prompt implements Interaction.
//
// Postcondition: Returns ErrTransportClosed if the Bridge closes before an
// answer arrives, or ctx.Err() if ctx ends first.
func (b *Bridge) Prompt(ctx context.Context, p Prompt, choices []Choice) (int, error) {
	select {
	case b.events <- Event{Prompt: &PromptEvent{Prompt: p, Choices: choices}}:
	case <-b.done:
		return 0, ErrTransportClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case idx := <-b.answers:
		return idx, nil
	case <-b.done:
		return 0, ErrTransportClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Answer delivers the consumer's reply to the pending prompt.
//
// Postcondition: Returns ErrTransportClosed if the Bridge is closed, or
// ctx.Err() if ctx ends before the session takes the answer.
func (b *Bridge) Answer(ctx context.Context, idx int) error {
	select {
	case b.answers <- idx:
		return nil
	case <-b.done:
		return ErrTransportClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the Bridge. Pending and future prompts fail with ErrTransportClosed.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (b *Bridge) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
