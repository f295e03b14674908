package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv applies vars on top of a clean dev baseline.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pickems-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.DBURL)
	assert.True(t, cfg.DBDisablePreparedBinary)
	assert.True(t, cfg.DBSeedOnStart)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.SwaggerEnabled)
	assert.Equal(t, ":6060", cfg.PprofAddr)
	assert.Equal(t, cfg.ServiceName, cfg.PyroscopeAppName)
	assert.Equal(t, 4, cfg.ScoringWorkers)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel.String())
}

func TestLoad_ProdDefaults(t *testing.T) {
	setEnv(t, map[string]string{"APP_ENV": "PROD", "SWAGGER_ENABLED": "", "LOG_FORMAT": ""})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.False(t, cfg.SwaggerEnabled)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown env":                {"APP_ENV": "qa"},
		"uptrace without dsn":        {"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""},
		"pyroscope without server":   {"PYROSCOPE_ENABLED": "true", "PYROSCOPE_SERVER_ADDRESS": ""},
		"bad prepared binary flag":   {"DB_DISABLE_PREPARED_BINARY_RESULT": "not-bool"},
		"bad cache ttl":              {"CACHE_TTL": "bad"},
		"zero shutdown timeout":      {"APP_SHUTDOWN_TIMEOUT": "0s"},
		"bad schedule date":          {"SCHEDULE_START_DATE": "26/11/2024"},
		"zero schedule days":         {"SCHEDULE_DAYS": "0"},
		"offset too far east":        {"SCHEDULE_UTC_OFFSET_HOURS": "20"},
		"offset too far west":        {"SCHEDULE_UTC_OFFSET_HOURS": "-13"},
		"zero scoring workers":       {"SCORING_WORKERS": "0"},
		"unknown log format":         {"LOG_FORMAT": "xml"},
		"breaker threshold zero":     {"ANUBIS_CIRCUIT_FAILURE_COUNT": "0"},
		"breaker probes zero":        {"ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ": "0"},
		"negative anubis cache ttl":  {"ANUBIS_CACHE_TTL": "-1s"},
		"empty cors list after trim": {"CORS_ALLOWED_ORIGINS": " , ,"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			setEnv(t, vars)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"APP_SERVICE_NAME":             "pickems-api-test",
		"PYROSCOPE_ENABLED":            "true",
		"PYROSCOPE_SERVER_ADDRESS":     "http://localhost:4040",
		"PPROF_ENABLED":                "true",
		"PPROF_ADDR":                   "  ",
		"CORS_ALLOWED_ORIGINS":         " https://a.example.com, http://localhost:5173 ",
		"ADMIN_EMAILS":                 " ops@example.com, lead@example.com ,",
		"LOG_FORMAT":                   "JSON",
		"LOG_LEVEL":                    "debug",
		"ANUBIS_CACHE_TTL":             "0s",
		"ANUBIS_CIRCUIT_FAILURE_COUNT": "3",
		"ANUBIS_CIRCUIT_OPEN_TIMEOUT":  "5s",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pickems-api-test", cfg.PyroscopeAppName)
	assert.Equal(t, ":6060", cfg.PprofAddr)
	assert.Equal(t, []string{"https://a.example.com", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, cfg.AdminEmails)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel.String())
	assert.Zero(t, cfg.AnubisCacheTTL)

	breaker := cfg.AnubisCircuitBreaker()
	assert.True(t, breaker.Enabled)
	assert.Equal(t, 3, breaker.FailureThreshold)
	assert.Equal(t, 5*time.Second, breaker.OpenTimeout)
	assert.Equal(t, 2, breaker.HalfOpenMaxReq)
}

func TestConfig_Calendar(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		day      int
		kickoff  string
		wantUTC  time.Time
		wantDays int
	}{
		{
			name:     "2024 tournament week",
			vars:     map[string]string{"SCHEDULE_START_DATE": "", "SCHEDULE_DAYS": "", "SCHEDULE_UTC_OFFSET_HOURS": ""},
			day:      1,
			kickoff:  "3:00 PM",
			wantUTC:  time.Date(2024, time.November, 26, 20, 0, 0, 0, time.UTC),
			wantDays: 5,
		},
		{
			name:     "custom offset",
			vars:     map[string]string{"SCHEDULE_START_DATE": "2025-03-01", "SCHEDULE_DAYS": "3", "SCHEDULE_UTC_OFFSET_HOURS": "7"},
			day:      3,
			kickoff:  "12:00 AM",
			wantUTC:  time.Date(2025, time.March, 2, 17, 0, 0, 0, time.UTC),
			wantDays: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)
			cfg, err := Load()
			require.NoError(t, err)

			cal, err := cfg.Calendar()
			require.NoError(t, err)
			days := cal.Days()
			require.Len(t, days, tt.wantDays)
			assert.Equal(t, 1, days[0])

			at, err := cal.At(tt.day, tt.kickoff)
			require.NoError(t, err)
			assert.True(t, at.Equal(tt.wantUTC), "got %s want %s", at.UTC(), tt.wantUTC)
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "flag appended",
			cfg:  Config{DBURL: "postgres://u:p@localhost:5432/pickems?sslmode=disable", DBDisablePreparedBinary: true},
			want: "postgres://u:p@localhost:5432/pickems?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name: "explicit flag kept",
			cfg:  Config{DBURL: "postgres://localhost/pickems?disable_prepared_binary_result=no", DBDisablePreparedBinary: true},
			want: "postgres://localhost/pickems?disable_prepared_binary_result=no",
		},
		{
			name: "toggle off",
			cfg:  Config{DBURL: "postgres://localhost/pickems"},
			want: "postgres://localhost/pickems",
		},
		{
			name: "keyword form untouched",
			cfg:  Config{DBURL: "host=localhost dbname=pickems", DBDisablePreparedBinary: true},
			want: "host=localhost dbname=pickems",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DatabaseURL())
		})
	}
}
