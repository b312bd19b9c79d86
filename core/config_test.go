package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "qa")

		conf := NewConfig()
		assert.Equal(t, "QA", conf.Env)
		assert.True(t, conf.Debug)
		assert.False(t, conf.TestMode)
		assert.Equal(t, "Admit CRM", conf.AppName)
		assert.Equal(t, ":8000", conf.Server.Address)
		assert.Equal(t, ":4000", conf.Server.DebugAddress)
		assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
		assert.Equal(t, 50, conf.Data.Students)
		assert.Equal(t, int64(0), conf.Data.Seed)
		assert.Equal(t, 25, conf.Directory.DefaultLimit)
		assert.Equal(t, 7*24*time.Hour, conf.Attention.Window)
		assert.Equal(t, "Needs Essay Help", conf.Attention.Tag)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_DEBUG", "false")
		t.Setenv("TEST_SERVER_ADDRESS", ":9000")
		t.Setenv("TEST_DATA_STUDENTS", "120")
		t.Setenv("TEST_DATA_SEED", "42")
		t.Setenv("TEST_ATTENTION_WINDOW", "72h")
		t.Setenv("TEST_STAFFNAME", "Jane Doe")

		conf := NewConfig()
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.False(t, conf.Debug)
		assert.Equal(t, ":9000", conf.Server.Address)
		assert.Equal(t, 120, conf.Data.Students)
		assert.Equal(t, int64(42), conf.Data.Seed)
		assert.Equal(t, 72*time.Hour, conf.Attention.Window)
		assert.Equal(t, "Jane Doe", conf.StaffName)
	})
}

func TestConfig_FromAddress(t *testing.T) {
	conf := &Config{AppName: "Admit CRM", DefaultFromEmail: "Admissions <team@admit.io>"}
	assert.Equal(t, "team@admit.io", conf.FromAddress().Address)
	assert.Equal(t, "Admissions", conf.FromAddress().Name)

	conf.DefaultFromEmail = "not an address"
	assert.Equal(t, "noreply@localhost", conf.FromAddress().Address)
	assert.Equal(t, "Admit CRM", conf.FromAddress().Name)
}
