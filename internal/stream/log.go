// Package stream turns raw lesson-pack progress events into human-readable
// log lines and fans them out to connected websocket subscribers.
package stream

import (
	"fmt"
	"sync"

	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// StatusFinished marks the terminal progress event. It is intentionally
// dropped from the log: completion is detected by the generation request
// settling, not by the stream.
const StatusFinished = "finished"

// FormatEvent maps a backend status code to its fixed user-facing template.
// Unknown statuses pass through verbatim. The terminal finished event yields
// an empty string and should not be logged.
func FormatEvent(event backendapi.ProgressEvent) string {
	switch event.Status {
	case "starting":
		return fmt.Sprintf("Starting lesson pack generation (%d diagrams)", event.Total)
	case "processing":
		return fmt.Sprintf("Processing diagram %d of %d", event.Idx, event.Total)
	case "diagram_ready":
		return fmt.Sprintf("Diagram %d of %d analysed", event.Idx, event.Total)
	case "scripts_ready":
		return fmt.Sprintf("Scripts for diagram %d of %d ready", event.Idx, event.Total)
	case "braille_ready":
		return fmt.Sprintf("Braille for diagram %d of %d ready", event.Idx, event.Total)
	case "audio_ready":
		return fmt.Sprintf("Audio for diagram %d of %d ready", event.Idx, event.Total)
	case StatusFinished:
		return ""
	default:
		return event.Status
	}
}

// Log is an ordered, append-only progress log.
type Log struct {
	mu    sync.Mutex
	lines []string
}

// Append records a progress event. Finished events are ignored. It returns
// the formatted line and whether it was appended.
func (l *Log) Append(event backendapi.ProgressEvent) (string, bool) {
	line := FormatEvent(event)
	if line == "" {
		return "", false
	}

	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	return line, true
}

// Lines returns a copy of the log in append order.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]string, len(l.lines))
	copy(lines, l.lines)
	return lines
}
