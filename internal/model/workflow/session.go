package workflow

import "time"

// Status tracks the lifecycle of a session or step.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Step is one discrete unit of work inside a session. Steps are identified
// by position in their session's sequence and mutated in place.
type Step struct {
	AgentName string     `json:"agentName"`
	StepName  string     `json:"stepName"`
	Status    Status     `json:"status"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Result    any        `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Session is one complete workflow execution with its ordered steps.
type Session struct {
	ID          string     `json:"id"`
	UserPrompt  string     `json:"userPrompt"`
	Status      Status     `json:"status"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Steps       []Step     `json:"steps"`
	FinalResult any        `json:"finalResult,omitempty"`
}
