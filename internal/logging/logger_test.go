package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escartian/FitByte/internal/config"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("unknown"))
}

func TestSetup_WritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	logFile := filepath.Join(t.TempDir(), "fitbyte")
	Setup(config.LogConfig{Level: "info", File: logFile, JSON: true})

	logrus.Info("hello from test")

	data, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from test"`)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
