package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// EventWriter emits typed Server-Sent Events over a streaming response.
type EventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewEventWriter prepares w for an SSE stream and returns a writer over it.
// ok is false when the underlying writer cannot flush.
func NewEventWriter(w http.ResponseWriter) (*EventWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("Access-Control-Allow-Origin", "*")

	return &EventWriter{w: w, flusher: flusher}, true
}

// Send writes one event with a JSON payload and flushes it immediately.
func (ew *EventWriter) Send(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("[sse] marshal %s event: %v", event, err)
		return
	}

	fmt.Fprintf(ew.w, "event: %s\ndata: %s\n\n", event, payload)
	ew.flusher.Flush()
}
