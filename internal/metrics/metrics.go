// Package metrics registers Mentora's Prometheus collectors. The HTTP
// server exposes them on /metrics; handlers record quiz and tool
// activity through the helpers here.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QuizAttemptsTotal *prometheus.CounterVec

	ToolCallsTotal   *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	ChatTurnsTotal *prometheus.CounterVec
}

var (
	once   sync.Once
	shared *Metrics
)

// New returns the process-wide metrics, registering them on first call.
func New() *Metrics {
	once.Do(func() {
		shared = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mentora_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "mentora_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
			QuizAttemptsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mentora_quiz_attempts_total",
					Help: "Total number of quiz attempts recorded",
				},
				[]string{"source"},
			),
			ToolCallsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mentora_tool_calls_total",
					Help: "Total number of tutor tool executions",
				},
				[]string{"tool", "success"},
			),
			ToolCallDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "mentora_tool_call_duration_seconds",
					Help:    "Tutor tool execution duration in seconds",
					Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to 20s
				},
				[]string{"tool"},
			),
			ChatTurnsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mentora_chat_turns_total",
					Help: "Total number of tutor chat turns",
				},
				[]string{"status"},
			),
		}
	})
	return shared
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordQuizAttempt counts a recorded attempt by entry point
// ("http", "mcp").
func (m *Metrics) RecordQuizAttempt(source string) {
	m.QuizAttemptsTotal.WithLabelValues(source).Inc()
}

// RecordToolCall counts one tutor tool execution.
func (m *Metrics) RecordToolCall(tool string, success bool, duration time.Duration) {
	m.ToolCallsTotal.WithLabelValues(tool, strconv.FormatBool(success)).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordChatTurn counts one chat turn by outcome ("ok", "error").
func (m *Metrics) RecordChatTurn(status string) {
	m.ChatTurnsTotal.WithLabelValues(status).Inc()
}
