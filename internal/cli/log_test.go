package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerRespectsLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantOut bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("opened canvas database") }, true},
		{"debug filtered at info", log.InfoLevel, func(l *log.Logger) { l.Debug("opened canvas database") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("opened canvas database") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("wrote output = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestProgressReportsMessageAndElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Placed 3 notes")

	out := buf.String()
	if !strings.Contains(out, "Placed 3 notes") {
		t.Errorf("output %q missing the message", out)
	}
	if !strings.Contains(out, "(") || !strings.Contains(out, "s)") {
		t.Errorf("output %q missing the elapsed duration", out)
	}
}

func TestRootCommandAttachesLoggerToContext(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetContext(context.Background())

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Fatalf("PersistentPreRunE: %v", err)
	}
	if got := loggerFromContext(root.Context()); got != c.Logger {
		t.Error("command context does not carry the CLI logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("expected the default logger for a bare context")
	}
}

func TestLoggerRoundTripsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	got := loggerFromContext(ctx)
	if got != logger {
		t.Fatal("retrieved a different logger than was attached")
	}

	got.Info("joined room")
	if buf.Len() == 0 {
		t.Error("attached logger did not write to its buffer")
	}
}
