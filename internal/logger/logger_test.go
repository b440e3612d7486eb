package logger

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevels(t *testing.T) {
	tests := []struct {
		env     string
		debugOn bool
		infoOn  bool
	}{
		{env: "production", debugOn: false, infoOn: true},
		{env: "development", debugOn: true, infoOn: true},
		{env: "staging", debugOn: true, infoOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log, err := New(tt.env, "")
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}
			defer log.Sync()

			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if got := log.Core().Enabled(zapcore.InfoLevel); got != tt.infoOn {
				t.Errorf("info enabled = %v, want %v", got, tt.infoOn)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("production", "loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

// Explicit levels override the environment default
func TestProperty_ExplicitLevelIsHonoured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("configured level is the lowest enabled level", prop.ForAll(
		func(env string, level string) bool {
			log, err := New(env, level)
			if err != nil {
				t.Logf("FAIL: New(%q, %q): %v", env, level, err)
				return false
			}
			defer log.Sync()

			want, err := zapcore.ParseLevel(level)
			if err != nil {
				return false
			}

			if !log.Core().Enabled(want) {
				t.Logf("FAIL: level %s disabled", want)
				return false
			}
			if want > zapcore.DebugLevel && log.Core().Enabled(want-1) {
				t.Logf("FAIL: level below %s enabled", want)
				return false
			}
			return true
		},
		gen.OneConstOf("production", "development"),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
