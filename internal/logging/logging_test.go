// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"Info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for s, want := range cases {
		assert.Equal(t, want, ParseLevel(s), "level %q", s)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	log.Info().Msg("dropped")
	log.Warn().Str("component", "Cube").Msg("kept")

	out := strings.TrimSpace(buf.String())
	require.Equal(t, 1, strings.Count(out, "\n")+1)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "kept", m["message"])
	assert.Equal(t, "Cube", m["component"])
	assert.Contains(t, m, "time")
}
