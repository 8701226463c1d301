package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coderbuddy/backend/internal/model/workflow"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionFinished = errors.New("session already finished")
	ErrNoSteps         = errors.New("session has no steps")
	ErrStepFinished    = errors.New("step already finished")
)

// Config tunes the in-memory registry.
type Config struct {
	// MaxSessions bounds retained sessions; 0 retains everything.
	// When exceeded, the oldest-started non-running session is evicted.
	MaxSessions int
}

type sessionRecord struct {
	session workflow.Session
	seq     uint64
}

type subscriberEntry struct {
	id string
	fn Subscriber
}

// Service is the canonical registry of workflow executions. All mutation
// goes through its methods; a single mutex serializes table access and keeps
// notification order identical to transition order.
type Service struct {
	mu          sync.Mutex
	cfg         Config
	sessions    map[string]*sessionRecord
	subscribers []subscriberEntry
	nextSeq     uint64
}

// NewService bootstraps an empty registry.
func NewService(cfg Config) *Service {
	return &Service{
		cfg:      cfg,
		sessions: make(map[string]*sessionRecord),
	}
}

// StartSession registers a new running session. An empty id is replaced with
// a generated one; a duplicate id is rejected.
func (s *Service) StartSession(_ context.Context, sessionID, userPrompt string) (workflow.Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		return workflow.Session{}, ErrSessionExists
	}

	session := workflow.Session{
		ID:         sessionID,
		UserPrompt: userPrompt,
		Status:     workflow.StatusRunning,
		StartTime:  time.Now().UTC(),
	}
	s.nextSeq++
	s.sessions[sessionID] = &sessionRecord{session: session, seq: s.nextSeq}
	s.evictLocked()

	s.notifyLocked(Event{
		Type:      EventSessionStarted,
		SessionID: sessionID,
		Session:   viewPtr(session),
	})
	return copySession(session), nil
}

// StartStep appends a running step to the session. A previous step still in
// running status is failed first so that only the last step can ever be
// running.
func (s *Service) StartStep(_ context.Context, sessionID, agentName, stepName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.activeLocked(sessionID)
	if err != nil {
		return err
	}

	if n := len(rec.session.Steps); n > 0 && rec.session.Steps[n-1].Status == workflow.StatusRunning {
		prev := &rec.session.Steps[n-1]
		s.finishStepLocked(sessionID, prev, workflow.StatusError, nil,
			fmt.Sprintf("superseded by step %q before completion", stepName))
	}

	step := workflow.Step{
		AgentName: agentName,
		StepName:  stepName,
		Status:    workflow.StatusRunning,
		StartTime: time.Now().UTC(),
	}
	rec.session.Steps = append(rec.session.Steps, step)

	s.notifyLocked(Event{
		Type:      EventStepStarted,
		SessionID: sessionID,
		Step:      stepViewPtr(step),
	})
	return nil
}

// CompleteStep marks the session's last step completed and stores its result.
func (s *Service) CompleteStep(_ context.Context, sessionID string, result any) error {
	return s.finishStep(sessionID, workflow.StatusCompleted, result, "")
}

// ErrorStep marks the session's last step errored with the given message.
func (s *Service) ErrorStep(_ context.Context, sessionID, errMessage string) error {
	return s.finishStep(sessionID, workflow.StatusError, nil, errMessage)
}

func (s *Service) finishStep(sessionID string, status workflow.Status, result any, errMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.activeLocked(sessionID)
	if err != nil {
		return err
	}
	if len(rec.session.Steps) == 0 {
		return ErrNoSteps
	}

	step := &rec.session.Steps[len(rec.session.Steps)-1]
	if step.Status.Terminal() {
		return ErrStepFinished
	}
	s.finishStepLocked(sessionID, step, status, result, errMessage)
	return nil
}

// finishStepLocked stamps the step terminal and emits the matching event.
func (s *Service) finishStepLocked(sessionID string, step *workflow.Step, status workflow.Status, result any, errMessage string) {
	now := time.Now().UTC()
	step.Status = status
	step.EndTime = &now
	step.Result = result
	step.Error = errMessage

	eventType := EventStepCompleted
	if status == workflow.StatusError {
		eventType = EventStepError
	}
	s.notifyLocked(Event{
		Type:      eventType,
		SessionID: sessionID,
		Step:      stepViewPtr(*step),
		Error:     errMessage,
	})
}

// CompleteSession transitions the session to its terminal completed status.
// Terminal sessions are immutable: a second completion is rejected.
func (s *Service) CompleteSession(_ context.Context, sessionID string, finalResult any) error {
	return s.finishSession(sessionID, workflow.StatusCompleted, finalResult, "")
}

// ErrorSession transitions the session to its terminal error status.
func (s *Service) ErrorSession(_ context.Context, sessionID, errMessage string) error {
	return s.finishSession(sessionID, workflow.StatusError, nil, errMessage)
}

func (s *Service) finishSession(sessionID string, status workflow.Status, finalResult any, errMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.activeLocked(sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec.session.Status = status
	rec.session.EndTime = &now
	if finalResult != nil {
		rec.session.FinalResult = finalResult
	}

	eventType := EventSessionCompleted
	if status == workflow.StatusError {
		eventType = EventSessionError
	}
	s.notifyLocked(Event{
		Type:      eventType,
		SessionID: sessionID,
		Session:   viewPtr(rec.session),
		Error:     errMessage,
	})
	return nil
}

// GetSession returns a copy of the session, or ErrSessionNotFound.
func (s *Service) GetSession(_ context.Context, sessionID string) (workflow.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return workflow.Session{}, ErrSessionNotFound
	}
	return copySession(rec.session), nil
}

// RecentSessions returns up to limit sessions ordered by start time, most
// recent first. Ties break by registration order, newest first.
func (s *Service) RecentSessions(_ context.Context, limit int) []workflow.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*sessionRecord, 0, len(s.sessions))
	for _, rec := range s.sessions {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].session.StartTime.Equal(records[j].session.StartTime) {
			return records[i].session.StartTime.After(records[j].session.StartTime)
		}
		return records[i].seq > records[j].seq
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	sessions := make([]workflow.Session, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, copySession(rec.session))
	}
	return sessions
}

// Subscribe registers a callback invoked on every transition, in
// registration order. The returned subscription removes it again.
func (s *Service) Subscribe(fn Subscriber) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.subscribers = append(s.subscribers, subscriberEntry{id: id, fn: fn})
	return &Subscription{id: id, svc: s}
}

func (s *Service) unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.subscribers {
		if entry.id == id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// activeLocked resolves a session that may still be mutated.
func (s *Service) activeLocked(sessionID string) (*sessionRecord, error) {
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if rec.session.Status.Terminal() {
		return nil, ErrSessionFinished
	}
	return rec, nil
}

// notifyLocked fans out to subscribers while the registry lock is held, so
// delivery order always matches transition order. A panicking subscriber is
// isolated and never blocks delivery to the rest.
func (s *Service) notifyLocked(event Event) {
	for _, entry := range s.subscribers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[monitor] subscriber panic on %s: %v", event.Type, r)
				}
			}()
			entry.fn(event)
		}()
	}
}

// evictLocked drops the oldest-started non-running session when the
// retention cap is exceeded.
func (s *Service) evictLocked() {
	if s.cfg.MaxSessions <= 0 || len(s.sessions) <= s.cfg.MaxSessions {
		return
	}

	var victim *sessionRecord
	for _, rec := range s.sessions {
		if rec.session.Status == workflow.StatusRunning {
			continue
		}
		if victim == nil ||
			rec.session.StartTime.Before(victim.session.StartTime) ||
			(rec.session.StartTime.Equal(victim.session.StartTime) && rec.seq < victim.seq) {
			victim = rec
		}
	}
	if victim != nil {
		delete(s.sessions, victim.session.ID)
	}
}

func copySession(s workflow.Session) workflow.Session {
	out := s
	out.Steps = make([]workflow.Step, len(s.Steps))
	copy(out.Steps, s.Steps)
	return out
}

func viewPtr(s workflow.Session) *workflow.SessionView {
	v := s.View()
	return &v
}

func stepViewPtr(st workflow.Step) *workflow.StepView {
	v := st.View()
	return &v
}
