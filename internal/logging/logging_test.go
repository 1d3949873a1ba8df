package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: FormatJSON, Output: &buf})
	component := ComponentLogger(logger, "installer")
	component.Debug().Str("operation", "install").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "installer", entry["component"])
	assert.Equal(t, "install", entry["operation"])
	assert.Equal(t, "debug", entry["level"])

	id, ok := entry["invocation_id"].(string)
	require.True(t, ok)
	_, err := ulid.Parse(id)
	assert.NoError(t, err)
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{name: "debug shows debug", level: "debug", wantDebug: true},
		{name: "default hides debug", level: "", wantDebug: false},
		{name: "invalid falls back to default", level: "loud", wantDebug: false},
		{name: "uppercase parses", level: "DEBUG", wantDebug: true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Format: FormatJSON, Output: &buf})
			logger.Debug().Msg("hidden unless debug")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)
		})
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: FormatConsole, Output: &buf, NoColor: true})
	logger.Info().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
	assert.Contains(t, buf.String(), "INF")
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: FormatJSON, Output: &buf})
	ctx := logger.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.Equal(t, zerolog.Disabled, FromContext(context.Background()).GetLevel())
}

func TestNewInvocationID_Unique(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, NewInvocationID(), NewInvocationID())
}
