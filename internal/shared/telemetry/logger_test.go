package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})
	return &buf
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := captureLogs(t)

	Info("resume rendered", map[string]any{"resume_id": "abc", "blocks": 12})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "resume rendered", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["resume_id"])
	assert.EqualValues(t, 12, entry["blocks"])
	assert.NotEmpty(t, entry["time"])
}

func TestErrorFieldsAreStrings(t *testing.T) {
	buf := captureLogs(t)

	Error("write failed", map[string]any{"err": errors.New("disk full")})

	assert.Contains(t, buf.String(), `"err":"disk full"`)
}

func TestSetLevelFiltersLines(t *testing.T) {
	buf := captureLogs(t)
	SetLevel("warn")

	Info("hidden", nil)
	Warn("overflow", map[string]any{"field": "key_skills"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)
	assert.Contains(t, out, `"field":"key_skills"`)
}
