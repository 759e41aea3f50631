package logger_test

import (
	"bytes"
	"testing"

	"github.com/rockdove/forge/internal/adapters/logger"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("staging source tree")
	l.Warn("tag already exists")
	l.Error(zerr.New("install failed"))

	out := buf.String()
	require.Contains(t, out, "level=INFO")
	require.Contains(t, out, "staging source tree")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "install failed")
}
