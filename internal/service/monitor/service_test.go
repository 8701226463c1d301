package monitor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coderbuddy/backend/internal/model/workflow"
)

func newTestService() *Service {
	return NewService(Config{})
}

func TestStartSessionGeneratesID(t *testing.T) {
	svc := newTestService()

	session, err := svc.StartSession(context.Background(), "", "build a todo app")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected generated session id")
	}
	if session.Status != workflow.StatusRunning {
		t.Fatalf("expected running status, got %s", session.Status)
	}
}

func TestStartSessionDuplicateID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "first"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := svc.StartSession(ctx, "s1", "second"); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
}

func TestUnknownSessionErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.StartStep(ctx, "missing", "Planner", "plan"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("StartStep: expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.CompleteStep(ctx, "missing", "done"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("CompleteStep: expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.CompleteSession(ctx, "missing", nil); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("CompleteSession: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("GetSession: expected ErrSessionNotFound, got %v", err)
	}
	if sessions := svc.RecentSessions(ctx, 10); len(sessions) != 0 {
		t.Fatalf("expected empty registry, got %d sessions", len(sessions))
	}
}

func TestTerminalSessionIsImmutable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.CompleteSession(ctx, "s1", "done"); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	if err := svc.CompleteSession(ctx, "s1", "again"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("second complete: expected ErrSessionFinished, got %v", err)
	}
	if err := svc.ErrorSession(ctx, "s1", "boom"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("error after complete: expected ErrSessionFinished, got %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Coder", "late step"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("step after complete: expected ErrSessionFinished, got %v", err)
	}

	session, err := svc.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session.Status != workflow.StatusCompleted {
		t.Fatalf("expected completed, got %s", session.Status)
	}
	if session.EndTime == nil {
		t.Fatalf("expected end time on terminal session")
	}
}

func TestStartStepSupersedesRunningStep(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Planner", "plan"); err != nil {
		t.Fatalf("first step: %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Architect", "tasks"); err != nil {
		t.Fatalf("second step: %v", err)
	}

	session, err := svc.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(session.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(session.Steps))
	}

	first := session.Steps[0]
	if first.Status != workflow.StatusError {
		t.Fatalf("expected superseded step to be errored, got %s", first.Status)
	}
	if !strings.Contains(first.Error, "superseded") {
		t.Fatalf("expected superseded message, got %q", first.Error)
	}
	if first.EndTime == nil {
		t.Fatalf("expected end time on superseded step")
	}
	if session.Steps[1].Status != workflow.StatusRunning {
		t.Fatalf("expected last step running, got %s", session.Steps[1].Status)
	}
}

func TestCompleteStepRequiresOpenStep(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.CompleteStep(ctx, "s1", "done"); !errors.Is(err, ErrNoSteps) {
		t.Fatalf("no steps: expected ErrNoSteps, got %v", err)
	}

	if err := svc.StartStep(ctx, "s1", "Planner", "plan"); err != nil {
		t.Fatalf("start step: %v", err)
	}
	if err := svc.CompleteStep(ctx, "s1", "done"); err != nil {
		t.Fatalf("complete step: %v", err)
	}
	if err := svc.CompleteStep(ctx, "s1", "again"); !errors.Is(err, ErrStepFinished) {
		t.Fatalf("terminal step: expected ErrStepFinished, got %v", err)
	}
	if err := svc.ErrorStep(ctx, "s1", "boom"); !errors.Is(err, ErrStepFinished) {
		t.Fatalf("error on terminal step: expected ErrStepFinished, got %v", err)
	}
}

func TestErrorStepStoresMessage(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Coder", "generate"); err != nil {
		t.Fatalf("start step: %v", err)
	}
	if err := svc.ErrorStep(ctx, "s1", "model timeout"); err != nil {
		t.Fatalf("error step: %v", err)
	}

	session, _ := svc.GetSession(ctx, "s1")
	step := session.Steps[0]
	if step.Status != workflow.StatusError {
		t.Fatalf("expected error status, got %s", step.Status)
	}
	if step.Error != "model timeout" {
		t.Fatalf("expected stored message, got %q", step.Error)
	}
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := svc.StartSession(ctx, id, "prompt "+id); err != nil {
			t.Fatalf("start %s: %v", id, err)
		}
	}

	sessions := svc.RecentSessions(ctx, 0)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	// Most recently started first; same-instant starts fall back to
	// registration order.
	got := []string{sessions[0].ID, sessions[1].ID, sessions[2].ID}
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}

	limited := svc.RecentSessions(ctx, 2)
	if len(limited) != 2 {
		t.Fatalf("expected 2 sessions with limit, got %d", len(limited))
	}
	if limited[0].ID != "c" || limited[1].ID != "b" {
		t.Fatalf("expected [c b], got [%s %s]", limited[0].ID, limited[1].ID)
	}
}

func TestSubscriberReceivesOrderedEvents(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var events []Event
	sub := svc.Subscribe(func(e Event) {
		events = append(events, e)
	})
	defer sub.Unsubscribe()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Planner", "plan"); err != nil {
		t.Fatalf("start step: %v", err)
	}
	if err := svc.CompleteStep(ctx, "s1", "plan ready"); err != nil {
		t.Fatalf("complete step: %v", err)
	}
	if err := svc.CompleteSession(ctx, "s1", "all done"); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	want := []EventType{EventSessionStarted, EventStepStarted, EventStepCompleted, EventSessionCompleted}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, events[i].Type)
		}
		if events[i].SessionID != "s1" {
			t.Fatalf("event %d: expected session s1, got %s", i, events[i].SessionID)
		}
	}

	if events[0].Session == nil || events[0].Session.ID != "s1" {
		t.Fatalf("session_started should carry the session view")
	}
	if events[1].Step == nil || events[1].Step.StepName != "plan" {
		t.Fatalf("step_started should carry the step view")
	}
	if events[3].Session == nil || events[3].Session.FinalResult == nil || *events[3].Session.FinalResult != "all done" {
		t.Fatalf("session_completed should carry the final result")
	}
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	panicSub := svc.Subscribe(func(Event) {
		panic("subscriber bug")
	})
	defer panicSub.Unsubscribe()

	var received []EventType
	sub := svc.Subscribe(func(e Event) {
		received = append(received, e.Type)
	})
	defer sub.Unsubscribe()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.ErrorSession(ctx, "s1", "boom"); err != nil {
		t.Fatalf("error session: %v", err)
	}

	want := []EventType{EventSessionStarted, EventSessionError}
	if len(received) != len(want) {
		t.Fatalf("expected %d events past the panicking subscriber, got %d", len(want), len(received))
	}
	for i, typ := range want {
		if received[i] != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, received[i])
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	count := 0
	sub := svc.Subscribe(func(Event) { count++ })

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	sub.Unsubscribe()
	if err := svc.CompleteSession(ctx, "s1", nil); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected 1 event before unsubscribe, got %d", count)
	}

	// Safe to call twice.
	sub.Unsubscribe()
}

func TestEvictionDropsOldestFinishedSession(t *testing.T) {
	svc := NewService(Config{MaxSessions: 2})
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "old", "prompt"); err != nil {
		t.Fatalf("start old: %v", err)
	}
	if err := svc.CompleteSession(ctx, "old", nil); err != nil {
		t.Fatalf("complete old: %v", err)
	}
	if _, err := svc.StartSession(ctx, "mid", "prompt"); err != nil {
		t.Fatalf("start mid: %v", err)
	}
	if _, err := svc.StartSession(ctx, "new", "prompt"); err != nil {
		t.Fatalf("start new: %v", err)
	}

	if _, err := svc.GetSession(ctx, "old"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected old session evicted, got %v", err)
	}
	// Running sessions are never evicted.
	if _, err := svc.GetSession(ctx, "mid"); err != nil {
		t.Fatalf("mid should survive: %v", err)
	}
	if _, err := svc.GetSession(ctx, "new"); err != nil {
		t.Fatalf("new should survive: %v", err)
	}
}

func TestGetSessionReturnsCopy(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "s1", "prompt"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.StartStep(ctx, "s1", "Planner", "plan"); err != nil {
		t.Fatalf("start step: %v", err)
	}

	session, _ := svc.GetSession(ctx, "s1")
	session.Steps[0].StepName = "mutated"

	again, _ := svc.GetSession(ctx, "s1")
	if again.Steps[0].StepName != "plan" {
		t.Fatalf("registry state leaked through returned copy")
	}
}
