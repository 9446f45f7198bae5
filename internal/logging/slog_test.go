package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "debug")
	ctx := context.Background()

	log.Debug(ctx, "restoring session", "account", "anna")
	log.Info(ctx, "diary saved", "tags", 2)
	log.Warn(ctx, "server unreachable", "attempt", 3)
	log.Error(ctx, "export failed", "key", "exports/u1.json")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "level=DEBUG")
	assert.Contains(t, lines[0], `msg="restoring session"`)
	assert.Contains(t, lines[0], "account=anna")
	assert.Contains(t, lines[1], "level=INFO")
	assert.Contains(t, lines[1], "tags=2")
	assert.Contains(t, lines[2], "level=WARN")
	assert.Contains(t, lines[3], "level=ERROR")
	assert.Contains(t, lines[3], "key=exports/u1.json")
}

func TestNew_JSONFormatAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "JSON", "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "tag limit exceeded", "user_id", "u1")

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "tag limit exceeded", rec["msg"])
	assert.Equal(t, "u1", rec["user_id"])
}

func TestSlogLogger_WithKeepsParentClean(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "text", "info")
	child := parent.With("module", "diaries")
	ctx := context.Background()

	child.Info(ctx, "listed", "count", 5)
	parent.Info(ctx, "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "module=diaries")
	assert.Contains(t, lines[0], "count=5")
	assert.NotContains(t, lines[1], "module=")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error(context.TODO(), "dropped")
	assert.NotNil(t, log.With("k", "v"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}
