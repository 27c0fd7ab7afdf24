package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("resolved systems", "systems", 3)

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("resolved systems")) {
		t.Error("output should contain the message")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("loaded document") },
			wantLog: true,
		},
		{
			name:    "solver detail suppressed at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("pivot", "row", 4, "col", 2) },
			wantLog: false,
		},
		{
			name:    "solver detail visible at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("pivot", "row", 4, "col", 2) },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay so the reported duration is measurable.
	time.Sleep(10 * time.Millisecond)

	prog.done("document resolved")

	if buf.Len() == 0 {
		t.Error("progress.done() should produce output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("document resolved")) {
		t.Error("progress.done() output should contain the message")
	}
}

func TestWithLogger(t *testing.T) {
	logger := log.Default()

	ctx := withLogger(context.Background(), logger)

	if retrieved := loggerFromContext(ctx); retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	// Without a logger in the context, the default is returned.
	if logger := loggerFromContext(context.Background()); logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	var buf bytes.Buffer
	customLogger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	retrieved.Info("rendered outputs", "formats", []string{"svg"})
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}
