package logging

import (
	"errors"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{Level(99), "UNKNOWN"},
	}

	for _, tc := range cases {
		if got := tc.level.String(); got != tc.want {
			t.Fatalf("Level(%d).String() = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestRender(t *testing.T) {
	logger := NewDefaultLoggerNoColor()

	msg := logger.render(WarnLevel, nil, "slow decode", Fields{"location": "rec.wav"})
	if msg != "[WARN] slow decode location=rec.wav" {
		t.Fatalf("render = %q", msg)
	}

	withErr := logger.render(ErrorLevel, errors.New("boom"), "decode failed")
	if withErr != "[ERROR] decode failed: boom" {
		t.Fatalf("render = %q", withErr)
	}
}

func TestRenderSortsFields(t *testing.T) {
	logger := NewDefaultLoggerNoColor()

	msg := logger.render(InfoLevel, nil, "done", Fields{"zeta": 1, "alpha": 2, "mid": 3})
	if msg != "[INFO] done alpha=2 mid=3 zeta=1" {
		t.Fatalf("fields not sorted: %q", msg)
	}
}

func TestWithFieldsInheritance(t *testing.T) {
	base := NewDefaultLoggerNoColor().WithFields(Fields{"component": "pipeline"})
	child := base.WithFields(Fields{"stage": "stft"})

	msg := child.(*DefaultLogger).render(InfoLevel, nil, "ok")
	if !strings.Contains(msg, "pipeline") || !strings.Contains(msg, "stft") {
		t.Fatalf("child logger lost inherited fields: %q", msg)
	}

	// The parent's field set is untouched by the child.
	parentMsg := base.(*DefaultLogger).render(InfoLevel, nil, "ok")
	if strings.Contains(parentMsg, "stft") {
		t.Fatalf("parent logger gained the child's fields: %q", parentMsg)
	}
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Fatalf("nil global logger should install NoOpLogger, got %T", GetGlobalLogger())
	}

	// Must be callable without panicking.
	Debug("ignored")
	Warn("ignored")
}
