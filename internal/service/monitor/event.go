package monitor

import "github.com/coderbuddy/backend/internal/model/workflow"

// EventType names a registry state transition.
type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventStepStarted      EventType = "step_started"
	EventStepCompleted    EventType = "step_completed"
	EventStepError        EventType = "step_error"
	EventSessionCompleted EventType = "session_completed"
	EventSessionError     EventType = "session_error"
)

// Event is delivered to subscribers on every state transition. Session is
// set for session-level events, Step for step-level events; Error carries
// the stored message on error transitions.
type Event struct {
	Type      EventType             `json:"event"`
	SessionID string                `json:"sessionId"`
	Session   *workflow.SessionView `json:"session,omitempty"`
	Step      *workflow.StepView    `json:"step,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// Subscriber receives registry events. Callbacks run synchronously on the
// mutating goroutine and must not call back into the Service or block.
type Subscriber func(Event)

// Subscription identifies a registered subscriber and allows its removal.
type Subscription struct {
	id  string
	svc *Service
}

// Unsubscribe removes the subscriber; it stops receiving events once the
// call returns. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.svc == nil {
		return
	}
	s.svc.unsubscribe(s.id)
	s.svc = nil
}
