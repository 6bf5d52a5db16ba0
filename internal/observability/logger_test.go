package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "info", Format: "json", Output: &buf, ServiceName: "pricelens"})

	log.Debug().Msg("hidden")
	matcherLog := Component(log, "matcher")
	matcherLog.Info().Str("hint", "abc123").Msg("matched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "pricelens", entry["service"])
	assert.Equal(t, "matcher", entry["component"])
	assert.Equal(t, "abc123", entry["hint"])
	assert.Equal(t, "matched", entry["message"])
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = ContextWithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))

	var buf bytes.Buffer
	log := FromContext(ctx, NewLogger(LogConfig{Output: &buf}))
	log.Info().Msg("x")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"error", "error"},
		{"", "info"},
		{"nonsense", "info"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, parseLevel(tc.in).String())
		})
	}
}
