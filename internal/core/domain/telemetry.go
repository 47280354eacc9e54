package domain

import "strings"

// VertexStatus represents the lifecycle state of one step (Vertex) of an environment setup,
// such as creating the environment or installing a single package.
type VertexStatus string

const (
	// VertexStatusPending indicates the step is waiting for earlier steps.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusRunning indicates the step is executing.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted indicates the step succeeded.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed indicates the step failed.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached indicates the step was skipped because the environment already satisfied it.
	VertexStatusCached VertexStatus = "cached"
	// VertexStatusSkipped indicates the step never ran because an earlier step failed.
	VertexStatusSkipped VertexStatus = "skipped"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// IsTerminal reports whether no further transitions are expected from s.
func (s VertexStatus) IsTerminal() bool {
	switch s {
	case VertexStatusCompleted, VertexStatusFailed, VertexStatusCached, VertexStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeVertexStatus converts a persisted string to a VertexStatus, defaulting to pending.
func NormalizeVertexStatus(s string) VertexStatus {
	switch status := VertexStatus(strings.ToLower(s)); status {
	case VertexStatusPending, VertexStatusRunning, VertexStatusCompleted,
		VertexStatusFailed, VertexStatusCached, VertexStatusSkipped:
		return status
	default:
		return VertexStatusPending
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so stored records tolerate
// unknown or differently cased statuses.
func (s *VertexStatus) UnmarshalText(text []byte) error {
	*s = NormalizeVertexStatus(string(text))
	return nil
}
