package agent

import "time"

// traceLimit caps how much tool input/output a trace event keeps.
const traceLimit = 200

// TraceEvent records one tool execution for display. Input and Output
// are truncated; the full payloads go to the event log.
type TraceEvent struct {
	Tool     string        `json:"tool"`
	Input    string        `json:"input"`
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error"`
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
