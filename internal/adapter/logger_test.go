package adapter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogrusLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("commit failed", "path", "a.txt", "stage", "rename")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "commit failed")
	assert.Contains(t, out, "path=a.txt")
	assert.Contains(t, out, "stage=rename")
}

func TestLogrusLogger_VerboseAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true).With("file", "b.txt")

	log.Debug("skipped", "reason", "binary")
	log.Error("odd", "dangling")

	out := buf.String()
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "file=b.txt")
	assert.Contains(t, out, "reason=binary")
	assert.Contains(t, out, "odd")
}

func TestNopLogger(t *testing.T) {
	var log NopLogger
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.Equal(t, log, log.With("k", "v"))
}
