package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: VerbosityUser},
		{name: "Console output mode", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput, tt.verbosity); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{"results always shown", VerbosityUser, OutputResults, true},
		{"startup hidden by default", VerbosityUser, OutputStartup, false},
		{"startup at -v", VerbosityInfo, OutputStartup, true},
		{"timing at -v hidden", VerbosityInfo, OutputTiming, false},
		{"timing at -vv", VerbosityDebug, OutputTiming, true},
		{"traversal at -vvv", VerbosityTrace, OutputTraversal, true},
		{"graph dump needs -vvvv", VerbosityTrace, OutputGraphDump, false},
		{"unknown category needs max", VerbosityTrace, OutputCategory(999), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
				t.Errorf("ShouldOutput(%d, %s) = %v, want %v", tt.verbosity, CategoryName(tt.category), got, tt.want)
			}
		})
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(VerbosityDebug); got != "Debug (-vv)" {
		t.Errorf("LevelName(2) = %q", got)
	}
	if got := LevelName(7); got != "All (-vvvv+)" {
		t.Errorf("LevelName(7) = %q", got)
	}
	if got := LevelName(-3); got != "Unknown" {
		t.Errorf("LevelName(-3) = %q", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core).Sugar()

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithClientID(ctx, "client-7")
	ctx = WithComponent(ctx, "server")

	LoggerFromContext(ctx, base).Infow("graph served", FieldNodes, 12)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[FieldRequestID] != "req-1" {
		t.Errorf("request_id = %v", fields[FieldRequestID])
	}
	if fields[FieldClientID] != "client-7" {
		t.Errorf("client_id = %v", fields[FieldClientID])
	}
	if fields[FieldComponent] != "server" {
		t.Errorf("component = %v", fields[FieldComponent])
	}
}

func TestLoggerFromContextWithoutFields(t *testing.T) {
	base := zap.NewNop().Sugar()
	if got := LoggerFromContext(context.Background(), base); got != base {
		t.Error("expected base logger back when context carries no fields")
	}
}

func TestPackageHelpersWithNilLogger(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	Logger = nil
	Infow("test", "key", "value")
	Warnw("test", "key", "value")
	Errorw("test", "key", "value")
	Debugw("test", "key", "value")
	Cleanup()
}
