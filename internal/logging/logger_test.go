package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ali/internal/logging"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, logging.Level(false))

	logger.Debug("hidden")
	logger.Warn("reload failed", "error", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.Level(true))
	assert.Equal(t, slog.LevelWarn, logging.Level(false))
}
