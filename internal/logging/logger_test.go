package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCtx_AddsIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	ctx := ContextWithCorrelationID(context.Background(), "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")
	Ctx(ctx).Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"correlation_id":"abc12345"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Msg("dropped")
	Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestGenerateCorrelationID(t *testing.T) {
	id := GenerateCorrelationID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, GenerateCorrelationID())
}
