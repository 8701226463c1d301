package workflow

import (
	"fmt"
	"time"
)

// StepView is the transport representation of a Step. Timestamps render as
// RFC 3339 strings, results as display strings; structure in results is not
// preserved across serialization.
type StepView struct {
	AgentName string  `json:"agentName"`
	StepName  string  `json:"stepName"`
	Status    Status  `json:"status"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Result    *string `json:"result"`
	Error     *string `json:"error"`
}

// SessionView is the transport representation of a Session.
type SessionView struct {
	ID          string     `json:"sessionId"`
	UserPrompt  string     `json:"userPrompt"`
	Status      Status     `json:"status"`
	StartTime   string     `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	Steps       []StepView `json:"steps"`
	FinalResult *string    `json:"finalResult"`
}

// View renders the step for transport.
func (st Step) View() StepView {
	v := StepView{
		AgentName: st.AgentName,
		StepName:  st.StepName,
		Status:    st.Status,
		StartTime: formatTime(st.StartTime),
		EndTime:   formatTimePtr(st.EndTime),
		Result:    stringify(st.Result),
	}
	if st.Error != "" {
		v.Error = &st.Error
	}
	return v
}

// View renders the session and all of its steps for transport.
func (s Session) View() SessionView {
	steps := make([]StepView, 0, len(s.Steps))
	for _, st := range s.Steps {
		steps = append(steps, st.View())
	}
	return SessionView{
		ID:          s.ID,
		UserPrompt:  s.UserPrompt,
		Status:      s.Status,
		StartTime:   formatTime(s.StartTime),
		EndTime:     formatTimePtr(s.EndTime),
		Steps:       steps,
		FinalResult: stringify(s.FinalResult),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func stringify(v any) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return nil
		}
		return &s
	}
	s := fmt.Sprintf("%v", v)
	return &s
}
