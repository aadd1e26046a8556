package log

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/YuminosukeSato/houseval/pkg/errors"
)

// TestLoggerInterface tests the zerolog-backed Logger through TestLogger
func TestLoggerInterface(t *testing.T) {
	testLogger := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", ErrAttrKey, fmt.Errorf("test error"))

	if testLogger.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON numbers decode as float64
		t.Error("Expected field number=42 not found")
	}

	if !testLogger.ContainsField(ErrAttrKey, "test error") {
		t.Error("Expected error field not found")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "LinearRegression",
		ComponentKey, "linear",
	)
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	if !testLogger.ContainsField(ModelNameKey, "LinearRegression") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "linear") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests level filtering
func TestLoggerEnabled(t *testing.T) {
	testLogger := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestBootstrapAttributes tests that evaluation attributes round-trip as JSON fields
func TestBootstrapAttributes(t *testing.T) {
	testLogger := NewTestLogger(LevelInfo)

	testLogger.Info("bootstrap finished",
		OperationKey, OperationBootstrap,
		IterationsKey, 1000,
		ConfidenceKey, 0.95,
		CILowerKey, 1.5,
		CIUpperKey, 2.5,
		RandomSeedKey, uint64(42),
	)

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	expectedFields := map[string]interface{}{
		OperationKey:  OperationBootstrap,
		IterationsKey: 1000.0,
		ConfidenceKey: 0.95,
		CILowerKey:    1.5,
		CIUpperKey:    2.5,
		RandomSeedKey: 42.0,
		"level":       "info",
		"message":     "bootstrap finished",
	}
	for key, expected := range expectedFields {
		if actual, exists := entries[0][key]; !exists {
			t.Errorf("Expected field %s not found", key)
		} else if actual != expected {
			t.Errorf("Field %s: expected %v, got %v", key, expected, actual)
		}
	}
}

// TestErrorLoggingStructured tests stack trace and typed detail extraction
func TestErrorLoggingStructured(t *testing.T) {
	testLogger := NewTestLogger(LevelError)

	err := errors.NewDimensionError("LinearRegression.Predict", 2, 1, 1)
	testLogger.Error("predict failed",
		ErrAttrKey, err,
		ErrorCodeKey, ErrorDimensionMismatch,
	)

	entries, parseErr := testLogger.GetLogEntries()
	if parseErr != nil {
		t.Fatalf("Failed to parse log entries: %v", parseErr)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 error entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry["level"] != "error" {
		t.Errorf("Expected error level, got %v", entry["level"])
	}

	stack, ok := entry[StacktraceAttrKey].(string)
	if !ok || stack == "" {
		t.Error("Expected stacktrace field for cockroachdb error")
	}

	detail, ok := entry[ErrorDetailKey].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected %s object, got %T", ErrorDetailKey, entry[ErrorDetailKey])
	}
	if detail["type"] != "DimensionError" || detail["expected"] != 2.0 {
		t.Errorf("unexpected detail: %v", detail)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestLoggerProviderIntegration tests provider injection
func TestLoggerProviderIntegration(t *testing.T) {
	provider := NewTestLoggerProvider(LevelDebug)
	SetLoggerProvider(provider)
	defer SetLoggerProvider(NewZerologProvider(nopWriter{}, LevelWarn))

	GetLogger().Info("provider test message")
	GetLoggerWithName("scenario").Info("named logger message")

	captured := provider.Captured()
	if !captured.ContainsMessage("provider test message") {
		t.Error("Provider test message not found")
	}
	if !captured.ContainsField(ComponentKey, "scenario") {
		t.Error("Component name not found in named logger output")
	}

	provider.SetLevel(LevelError)
	GetLogger().Info("filtered message")
	if provider.Captured().ContainsMessage("filtered message") {
		t.Error("Info message should be filtered after SetLevel(LevelError)")
	}
}

// TestConcurrentLogging tests thread safety of logging
func TestConcurrentLogging(t *testing.T) {
	testLogger := NewTestLogger(LevelInfo)

	const numGoroutines = 4
	const messagesPerGoroutine = 5

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j),
					"goroutine_id", id,
					"message_id", j,
				)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != numGoroutines*messagesPerGoroutine {
		t.Errorf("Expected %d log entries, got %d", numGoroutines*messagesPerGoroutine, len(entries))
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("dropped", "k", "v")
	if l.Enabled(context.Background(), LevelError) {
		t.Error("nop logger should not be enabled at any level")
	}
	if !strings.HasPrefix(LevelWarn.String(), "WARN") {
		t.Errorf("unexpected level string %q", LevelWarn.String())
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// BenchmarkLogging benchmarks logging performance
func BenchmarkLogging(b *testing.B) {
	logger := NewZerologLogger(nopWriter{}, LevelInfo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationPredict,
			SamplesKey, 1000,
		)
	}
}
