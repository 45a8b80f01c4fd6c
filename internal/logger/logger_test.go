package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "json")

	Debug("allocation started", "types", 2)

	assert.Contains(t, buf.String(), `"msg":"allocation started"`)
	assert.Contains(t, buf.String(), `"types":2`)
}

func TestInitializeWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "text")

	ctx := ContextWithLogger(context.Background(), Get().With("request_id", "abc"))
	InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Same(t, Get(), FromContext(context.Background()))
}
