package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("log output missing message: %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	child := WithLogger(logger, "component", "organizer")
	child.Info("scanning")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("child logger missing attached field: %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")
	if strings.Contains(buf.String(), "suppressed") {
		t.Error("info message logged at error level")
	}

	SetLogLevel(logger, log.DebugLevel)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message suppressed at debug level")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID returned invalid uuid %q: %v", id, err)
	}

	if GenerateID() == GenerateID() {
		t.Error("expected distinct ids")
	}
}
