package combat

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Engine manages all active combat sessions, keyed by session ID.
// It is safe for concurrent use; each session runs on its caller's goroutine.
type Engine struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewEngine creates an empty combat Engine.
//
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine() *Engine {
	return &Engine{sessions: make(map[uuid.UUID]*Session)}
}

// Start creates a session from s and registers it.
//
// Postcondition: On success the session is retrievable by its ID.
func (e *Engine) Start(s Setup) (*Session, error) {
	sess, err := NewSession(s)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session with id.
func (e *Engine) Get(id uuid.UUID) (*Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[id]
	return s, ok
}

// End forgets the session with id.
func (e *Engine) End(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// Len returns the number of registered sessions.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// Run plays the session with id to its end and then forgets it.
//
// Postcondition: The session is no longer registered when Run returns,
// whether or not it succeeded.
func (e *Engine) Run(ctx context.Context, id uuid.UUID) (Result, error) {
	sess, ok := e.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("combat session %s not found", id)
	}
	defer e.End(id)
	return sess.Run(ctx)
}
