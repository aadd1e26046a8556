// Package log provides testing utilities for structured logging.
//
// TestLogger writes through the zerolog backend into memory so tests assert on
// exactly what production code would emit.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
)

// lockedBuffer serialises writes from concurrent loggers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// TestLogger captures JSON log lines in memory for later inspection.
type TestLogger struct {
	Logger
	buffer *lockedBuffer
}

// NewTestLogger creates a TestLogger with the specified minimum level.
//
// Example:
//
//	logger := log.NewTestLogger(log.LevelDebug)
//	logger.Info("test message", "key", "value")
//	if !logger.ContainsField("key", "value") { ... }
func NewTestLogger(level Level) *TestLogger {
	buf := &lockedBuffer{}
	return &TestLogger{
		Logger: NewZerologLogger(buf, level),
		buffer: buf,
	}
}

// With implements Logger.With; derived loggers share the capture buffer.
func (t *TestLogger) With(fields ...any) Logger {
	return &TestLogger{
		Logger: t.Logger.With(fields...),
		buffer: t.buffer,
	}
}

// String returns everything captured so far.
func (t *TestLogger) String() string {
	return t.buffer.String()
}

// GetLogEntries parses the captured output into one map per log line.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured line contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.buffer.String(), message)
}

// ContainsField reports whether any entry has key set to value.
// JSON numbers decode as float64, so compare numeric fields with float64 values.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if fieldValue, exists := entry[key]; exists && fieldValue == value {
			return true
		}
	}
	return false
}

// Clear discards all captured output.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}

// TestLoggerProvider implements LoggerProvider for tests.
type TestLoggerProvider struct {
	mu     sync.Mutex
	logger *TestLogger
}

// NewTestLoggerProvider creates a provider whose loggers share one TestLogger buffer.
func NewTestLoggerProvider(level Level) *TestLoggerProvider {
	return &TestLoggerProvider{logger: NewTestLogger(level)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *TestLoggerProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel. Previously captured output is kept.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = &TestLogger{
		Logger: NewZerologLogger(p.logger.buffer, level),
		buffer: p.logger.buffer,
	}
}

// Captured returns the provider's TestLogger for assertions.
func (p *TestLoggerProvider) Captured() *TestLogger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logger
}
