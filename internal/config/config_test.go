package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendev-labs/auto-notion/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServiceName, cfg.Service.Name)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultPage, cfg.Planner.DefaultPage)
	assert.Equal(t, config.DefaultMaxDays, cfg.Planner.MaxDays)
	assert.Equal(t, config.DefaultSchedulerSpec, cfg.Scheduler.Spec)
	assert.Equal(t, config.DefaultHorizonDays, cfg.Scheduler.HorizonDays)
	assert.Equal(t, config.DefaultRedisChannel, cfg.Redis.Channel)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("AUTO_NOTION_PORT", "9100")
	t.Setenv("POSTGRES_HOST", "db.internal")

	path := writeConfig(t, `
service:
  debug: true
server:
  port: 8081
database:
  enabled: true
  dbname: planner
planner:
  max_days: 30
timing:
  location: UTC
scheduler:
  enabled: true
  pages: [MythicWisdom, CrystalEnergy]
  horizon_days: 3
  align: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "planner", cfg.Database.DBName)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.Planner.MaxDays)
	assert.Equal(t, []string{"MythicWisdom", "CrystalEnergy"}, cfg.Scheduler.Pages)
	assert.Equal(t, 3, cfg.Scheduler.HorizonDays)
	assert.True(t, cfg.Scheduler.Align)

	loc, err := cfg.Timing.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := config.Load(writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:    "port out of range",
			mutate:  func(c *config.Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "negative max days",
			mutate:  func(c *config.Config) { c.Planner.MaxDays = -1 },
			wantErr: "planner.max_days",
		},
		{
			name:    "unknown location",
			mutate:  func(c *config.Config) { c.Timing.Location = "Not/AZone" },
			wantErr: "timing.location",
		},
		{
			name: "redis enabled without address",
			mutate: func(c *config.Config) {
				c.Redis.Enabled = true
				c.Redis.Address = ""
			},
			wantErr: "redis.address",
		},
		{
			name:    "scheduler without database",
			mutate:  func(c *config.Config) { c.Scheduler.Enabled = true },
			wantErr: "database.enabled",
		},
		{
			name: "scheduler horizon beyond max days",
			mutate: func(c *config.Config) {
				c.Scheduler.Enabled = true
				c.Database.Enabled = true
				c.Scheduler.HorizonDays = 400
			},
			wantErr: "scheduler.horizon_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
