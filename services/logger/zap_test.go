package logsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/admitcrm/core"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name string
		conf *core.Config
	}{
		{name: "test mode", conf: &core.Config{TestMode: true}},
		{name: "debug", conf: &core.Config{Debug: true, AppName: "Admit CRM"}},
		{name: "production", conf: &core.Config{AppName: "Admit CRM", Build: "1.0.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, err := NewZapLogger(tt.conf)
			require.NoError(t, err)
			assert.NotNil(t, zl)
		})
	}
}
