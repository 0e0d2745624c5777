package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("eagle-pass-server")
	l.Logger = l.Output(&buf)

	l.Info().Str("user_id", "42").Msg("password added")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "eagle-pass-server", entry["role"])
	assert.Equal(t, "password added", entry["message"])
	assert.Equal(t, "42", entry["user_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryShape")
}

func TestNewConsoleLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewConsoleLogger("vaultctl"))
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, SetLevel(" INFO "))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel(), "empty level must not change anything")

	assert.Error(t, SetLevel("chatty"))
}

func TestSetLevel_FiltersBelowLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := NewLogger("filter")
	l.Logger = l.Output(&buf)

	require.NoError(t, SetLevel("error"))
	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_DoesNotLeakFieldsToParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})
	assert.NotSame(t, parent, child)

	parent.Info().Msg("parent entry")
	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.Equal(t, "parent", entry["role"])
}

func TestFromContext_NeverNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest_ReturnsTraceScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "trace-1").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/passwords", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("handled")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "trace-1", entry["trace_id"])
}
