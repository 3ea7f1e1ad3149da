package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerTo_Level(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"nonsense", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			logger := NewLoggerTo(&bytes.Buffer{}, tt.input)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewLoggerTo_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info")

	logger.WithField("session", "session-1").Info("started")

	assert.Contains(t, buf.String(), "session=session-1")
	assert.Contains(t, buf.String(), "started")
}
