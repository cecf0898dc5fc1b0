// Package logging provides structured JSONL event logging for the
// binding layer. Events carry a level, a subsystem category and an
// open-ended details map; the sink is a plain io.Writer so hosts can
// direct output to a file, a buffer or nothing at all.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category represents the subsystem generating the log
type Category string

const (
	CategoryDocument  Category = "document"
	CategoryBridge    Category = "bridge"
	CategoryLayout    Category = "layout"
	CategoryLifecycle Category = "lifecycle"
	CategorySurface   Category = "surface"
	CategoryLangmap   Category = "langmap"
)

// Event represents a structured log event
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	AdapterID string         `json:"adapter_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// Logger writes structured events to a sink, one JSON object per line.
type Logger struct {
	adapterID string
	sink      io.Writer
	mu        sync.Mutex
	minLevel  Level
}

// NewLogger creates a logger writing JSONL events to sink.
// A nil sink discards all events.
func NewLogger(sink io.Writer) *Logger {
	return &Logger{
		sink:     sink,
		minLevel: LevelInfo,
	}
}

// Nop returns a logger that discards everything. Safe to share.
func Nop() *Logger {
	return &Logger{minLevel: LevelError, sink: nil}
}

// SetMinLevel sets the minimum log level
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// SetAdapterID sets the adapter ID stamped on subsequent events
func (l *Logger) SetAdapterID(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.adapterID = id
}

// Log writes an event to the sink
func (l *Logger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sink == nil {
		return nil
	}

	// Set timestamp if not provided
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Set adapter ID if not provided
	if event.AdapterID == "" {
		event.AdapterID = l.adapterID
	}

	// Check min level
	if !l.shouldLog(event.Level) {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.sink.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// shouldLog checks if event should be logged based on level
func (l *Logger) shouldLog(level Level) bool {
	levels := map[Level]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
	}
	return levels[level] >= levels[l.minLevel]
}

// Helper methods for common log patterns

// Debug logs a debug event
func (l *Logger) Debug(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     LevelDebug,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}

// Info logs an info event
func (l *Logger) Info(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     LevelInfo,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}

// Warn logs a warning event
func (l *Logger) Warn(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     LevelWarn,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}

// Error logs an error event
func (l *Logger) Error(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     LevelError,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}
