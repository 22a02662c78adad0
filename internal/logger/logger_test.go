package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"eventhub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestExitMethodWithError(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "text")
	defer Initialize("info", "text")

	ExitMethodWithError("svc.Do", domain.ErrCapacityExceeded)
	assert.Empty(t, buf.String(), "domain errors are debug-level")

	ExitMethodWithError("svc.Do", errors.New("connection refused"))
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "abc")
	ctx := NewContext(context.Background(), l)

	InfoContext(ctx, "hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.NotNil(t, FromContext(context.Background()))
}
