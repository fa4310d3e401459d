package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log
	buf := &bytes.Buffer{}
	log = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = prev })
	return buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestFromContext_AddsRequestAndUserID(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	CtxInfo(ctx, "hello", "k", "v")

	entry := lastEntry(t, buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestCtxWithError(t *testing.T) {
	buf := captureLogs(t)

	CtxWithError(context.Background(), "boom", errors.New("disk full"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	buf := captureLogs(t)
	gl := NewGormLogger("production")

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormLogger_LogsFailures(t *testing.T) {
	buf := captureLogs(t)
	gl := NewGormLogger("production").LogMode(gormlogger.Error)

	gl.Trace(WithRequestID(context.Background(), "req-9"), time.Now(), func() (string, int64) {
		return "INSERT INTO users", 0
	}, errors.New("duplicate key"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "database query failed", entry["msg"])
	assert.Equal(t, "req-9", entry["request_id"])
}
