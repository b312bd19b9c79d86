package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/admitcrm/core"
)

func TestRollbarLogger(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	conf := &core.Config{Env: "TEST", TestMode: true}
	logger := NewRollbarLogger(zap.New(obs), conf)
	defer logger.Sync()

	logger.Info("student.AddNote(s1): General note")
	logger.Error("Internal Server Error", errors.New("boom"), map[string]interface{}{"path": "/api/dashboard"}, 42)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "student.AddNote(s1): General note", entries[0].Message)

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	fields := entries[1].ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "/api/dashboard", fields["path"])
	assert.EqualValues(t, 42, fields["arg2"])
}
