package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"cae/internal/logger"

	"github.com/charmbracelet/log"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer

	logger.InitWriter(&buf, false, true)
	log.Debug("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected non-debug output %q", buf.String())
	}

	buf.Reset()
	logger.InitWriter(&buf, true, true)
	log.Debug("details", "steps", 3)
	if !strings.Contains(buf.String(), "details") || !strings.Contains(buf.String(), "CAE") {
		t.Errorf("unexpected debug output %q", buf.String())
	}
}
