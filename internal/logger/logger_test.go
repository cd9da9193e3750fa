package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("test message")
	Infof("formatted %s", "message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "formatted message")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Error("test error")
	Errorf("formatted %s", "error")

	output := buf.String()
	assert.Contains(t, output, "test error")
	assert.Contains(t, output, "formatted error")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)

	Debug("test debug")
	Debugf("formatted %s", "debug")

	output := buf.String()
	assert.Contains(t, output, "test debug")
	assert.Contains(t, output, "formatted debug")
}
