// Package session keeps the per-browser state of the planning flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is a step of the planning flow.
type State string

const (
	StateIdle              State = "idle"
	StatePlanRequested     State = "plan_requested"
	StatePlanDisplayed     State = "plan_displayed"
	StateFeedbackRequested State = "feedback_requested"
	StateFeedbackSaved     State = "feedback_saved"
)

var ErrInvalidTransition = errors.New("invalid flow transition")

var transitions = map[State][]State{
	StateIdle:              {StatePlanRequested},
	StatePlanRequested:     {StatePlanDisplayed},
	StatePlanDisplayed:     {StatePlanRequested, StateFeedbackRequested},
	StateFeedbackRequested: {StateFeedbackSaved},
	StateFeedbackSaved:     {StatePlanRequested},
}

// Session is the flow state of one browser. It holds the id of the trip on
// display, never the generated plan itself.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	TripID    int64     `json:"trip_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an idle session with a fresh id.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		UpdatedAt: time.Now().UTC(),
	}
}

// CanTransition reports whether the flow may move from the current state to to.
func (s *Session) CanTransition(to State) bool {
	for _, next := range transitions[s.State] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the session to the given state.
func (s *Session) Transition(to State) error {
	if !s.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
	}
	s.State = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Store persists sessions. Get returns a new idle session carrying the
// requested id when nothing is stored under it.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

func idleWithID(id string) *Session {
	s := New()
	if id != "" {
		s.ID = id
	}
	return s
}
