package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)
	defer Discard()

	WithRun("abc").Debug("run started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["run"])
	assert.Equal(t, "run started", entry["msg"])
}

func TestInitUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("shouting", "text", &buf)
	defer Discard()

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	Log.Debug("hidden")
	assert.Empty(t, buf.String())
}
