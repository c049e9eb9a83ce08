package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "db"
dbname = "studio"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL())
	assert.Equal(t, "UTC", cfg.Studio.Timezone)
	assert.Equal(t, defaultAdvanceBookingDays, cfg.Studio.AdvanceBookingDays)
	assert.Len(t, cfg.Catalog.Slots, 5)

	registry, err := cfg.Catalog.Registry()
	require.NoError(t, err)
	// четверг: четыре ежедневных слота и ночной
	thursday, err := registry.Shared().SlotsForWeekday(4)
	require.NoError(t, err)
	assert.Len(t, thursday, 5)
}

func TestLoad_ExplicitZeroAdvanceBookingDaysMeansNoLimit(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[studio]
advance_booking_days = 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Studio.AdvanceBookingDays)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envDBPassword, "s3cret")
	t.Setenv(envRedisPassword, "r3dis")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "r3dis", cfg.Cache.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
	assert.Contains(t, cfg.Database.DSN(), "dbname=studio")
}

func TestLoad_CatalogAndFlows(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[studio]
timezone = "Europe/Moscow"

[[catalog.slots]]
key = "morning"
start = "10:00"
end = "12:30"
label = "10:00 AM - 12:30 PM"
weekdays = [0, 1, 2, 3, 4, 5, 6]

[[catalog.flows]]
name = "kids"
slots = ["morning"]
weekdays = [0, 6]
`))
	require.NoError(t, err)

	registry, err := cfg.Catalog.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{"kids"}, registry.Flows())

	loc, err := cfg.Studio.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "broken toml", content: `[database`, wantErr: ErrReadConfig},
		{name: "unknown key", content: minimalConfig + "\n[server]\nport = 1\n", wantErr: ErrReadConfig},
		{name: "missing host", content: "[database]\ndbname = \"x\"\n", wantErr: ErrInvalidConfig},
		{name: "bad timezone", content: minimalConfig + "\n[studio]\ntimezone = \"Mars/Olympus\"\n", wantErr: ErrInvalidConfig},
		{name: "cache without addr", content: minimalConfig + "\n[cache]\nenabled = true\n", wantErr: ErrInvalidConfig},
		{
			name: "slot end before start",
			content: minimalConfig + `
[[catalog.slots]]
key = "broken"
start = "12:00"
end = "10:00"
label = "broken"
weekdays = [1]
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "flow references unknown slot",
			content: minimalConfig + `
[[catalog.flows]]
name = "kids"
slots = ["nope"]
`,
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
