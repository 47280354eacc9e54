package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/adapters/logger"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	return l, &buf
}

func TestLogger_Info(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("Created virtual environment at python_project/api/.venv")
	assert.Equal(t, "Created virtual environment at python_project/api/.venv\n", buf.String())
}

func TestLogger_Warn(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Warn("pip is out of date")
	assert.Equal(t, "! pip is out of date\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	l, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "failed to resolve dependencies"), "package", "ghost")
	l.Error(err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: failed to resolve dependencies"), out)
	assert.Contains(t, out, "package: ghost")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ package not found")
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetJSON(true)

	l.Info("hello")
	l.Error(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "hello", record["msg"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogger_SetOutputKeepsJSONMode(t *testing.T) {
	l, _ := newTestLogger(t)
	l.SetJSON(true)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Info("still json")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())
}

func TestLogger_ErrorTaggedWithProject(t *testing.T) {
	l, buf := newTestLogger(t)

	cause := zerr.With(zerr.Wrap(domain.ErrInstallFailed, "pip install failed"), "package", "idna")
	l.Error(zerr.With(zerr.Wrap(cause, "failed to set up project"), "project", "api"))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "✗ [api] Error: failed to set up project", lines[0])
	assert.Contains(t, buf.String(), "project: api")
	assert.Contains(t, buf.String(), "→ pip install failed")
	assert.Contains(t, buf.String(), "package: idna")
}

func TestConsoleHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	log := slog.New(logger.NewConsoleHandler(&buf, slog.LevelInfo)).With("project", "web")

	log.Debug("hidden")
	log.Warn("could not upgrade pip", "attempt", 2)

	assert.Equal(t, "! could not upgrade pip project=web attempt=2\n", buf.String())
}
