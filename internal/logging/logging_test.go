package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, LevelWarn)
	defer Init(&bytes.Buffer{}, LevelInfo)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestSetLevelInvalidFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "invalid")
	defer Init(&bytes.Buffer{}, LevelInfo)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output at fallback level: %q", out)
	}
}
