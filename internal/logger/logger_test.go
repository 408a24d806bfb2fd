package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestMinLevel_DefaultsToInfo(t *testing.T) {
	t.Setenv(levelEnv, "")
	if got := minLevel(); got != zap.InfoLevel {
		t.Fatalf("level = %v, want info", got)
	}
}

func TestMinLevel_ReadsOverride(t *testing.T) {
	t.Setenv(levelEnv, "debug")
	if got := minLevel(); got != zap.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
}

func TestMinLevel_GarbageFallsBackToInfo(t *testing.T) {
	t.Setenv(levelEnv, "chatty")
	if got := minLevel(); got != zap.InfoLevel {
		t.Fatalf("level = %v, want info", got)
	}
}

func TestNew_CreatesLogDir(t *testing.T) {
	root := t.TempDir()
	log, err := New(root, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Infow("boot", "root", root)
	_ = log.Sync()
}
