package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/platform/resilience"
)

const scheduleDateLayout = "2006-01-02"

// Config is the process configuration read from the environment by Load.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	DBSeedOnStart               bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	ShutdownTimeout             time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	SwaggerEnabled              bool
	AnubisBaseURL               string
	AnubisIntrospectPath        string
	AnubisAdminKey              string
	AnubisTimeout               time.Duration
	AnubisCacheTTL              time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int
	AdminEmails                 []string
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	ScheduleStartDate           time.Time
	ScheduleDays                int
	ScheduleUTCOffsetHours      int
	ScoringWorkers              int
	LogLevel                    logging.Level
	LogFormat                   string
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	r := &envReader{}

	appEnv := strings.ToLower(r.str("APP_ENV", EnvDev))
	switch appEnv {
	case EnvDev, EnvStage, EnvProd:
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", appEnv, EnvDev, EnvStage, EnvProd)
	}
	prod := appEnv == EnvProd
	logFormatDefault := logging.FormatConsole
	if prod {
		logFormatDefault = logging.FormatJSON
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    r.raw("APP_SERVICE_NAME", "pickems-api"),
		ServiceVersion: r.raw("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       r.raw("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    r.duration("APP_READ_TIMEOUT", 10*time.Second, true),
		WriteTimeout:   r.duration("APP_WRITE_TIMEOUT", 15*time.Second, true),

		ShutdownTimeout:    r.duration("APP_SHUTDOWN_TIMEOUT", 10*time.Second, false),
		CORSAllowedOrigins: r.csv("CORS_ALLOWED_ORIGINS", "*"),
		SwaggerEnabled:     r.boolean("SWAGGER_ENABLED", !prod),

		DBURL:                   r.str("DB_URL", ""),
		DBDisablePreparedBinary: r.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		DBSeedOnStart:           r.boolean("DB_SEED_ON_START", true),
		CacheEnabled:            r.boolean("CACHE_ENABLED", true),
		CacheTTL:                r.duration("CACHE_TTL", 30*time.Second, false),

		AnubisBaseURL:               r.raw("ANUBIS_BASE_URL", "http://localhost:8081"),
		AnubisIntrospectPath:        r.raw("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect"),
		AnubisAdminKey:              r.raw("ANUBIS_ADMIN_KEY", ""),
		AnubisTimeout:               r.duration("ANUBIS_TIMEOUT", 3*time.Second, false),
		AnubisCacheTTL:              r.duration("ANUBIS_CACHE_TTL", 30*time.Second, true),
		AnubisCircuitEnabled:        r.boolean("ANUBIS_CIRCUIT_ENABLED", true),
		AnubisCircuitFailureCount:   r.integer("ANUBIS_CIRCUIT_FAILURE_COUNT", 5, 1),
		AnubisCircuitOpenTimeout:    r.duration("ANUBIS_CIRCUIT_OPEN_TIMEOUT", 15*time.Second, false),
		AnubisCircuitHalfOpenMaxReq: r.integer("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1),
		AdminEmails:                 r.csv("ADMIN_EMAILS", ""),

		UptraceEnabled:     r.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:         r.str("UPTRACE_DSN", uptraceDSNFromOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))),
		UptraceLogsEnabled: r.boolean("UPTRACE_LOGS_ENABLED", false),

		PprofEnabled: r.boolean("PPROF_ENABLED", false),
		PprofAddr:    r.str("PPROF_ADDR", ":6060"),

		PyroscopeEnabled:           r.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     r.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:         r.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     r.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: r.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        r.duration("PYROSCOPE_UPLOAD_RATE", 15*time.Second, false),

		ScheduleStartDate:      r.date("SCHEDULE_START_DATE", "2024-11-26"),
		ScheduleDays:           r.integer("SCHEDULE_DAYS", 5, 1),
		ScheduleUTCOffsetHours: r.integer("SCHEDULE_UTC_OFFSET_HOURS", -5, -12),
		ScoringWorkers:         r.integer("SCORING_WORKERS", 4, 1),

		LogLevel:  logging.ParseLevel(r.raw("LOG_LEVEL", r.raw("APP_LOG_LEVEL", "info"))),
		LogFormat: strings.ToLower(r.str("LOG_FORMAT", logFormatDefault)),
	}
	cfg.PyroscopeAppName = r.str("PYROSCOPE_APP_NAME", cfg.ServiceName)

	r.require(cfg.ScheduleUTCOffsetHours <= 14, "SCHEDULE_UTC_OFFSET_HOURS must be between -12 and 14")
	r.require(!cfg.UptraceEnabled || cfg.UptraceDSN != "", "UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	r.require(!cfg.PyroscopeEnabled || cfg.PyroscopeServerAddress != "", "PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	r.require(len(cfg.CORSAllowedOrigins) > 0, "CORS_ALLOWED_ORIGINS cannot be empty")
	r.require(cfg.LogFormat == logging.FormatJSON || cfg.LogFormat == logging.FormatConsole,
		fmt.Sprintf("invalid LOG_FORMAT %q: valid values are %s, %s", cfg.LogFormat, logging.FormatJSON, logging.FormatConsole))
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// Calendar builds the tournament calendar from the SCHEDULE_* settings.
func (c Config) Calendar() (schedule.Calendar, error) {
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", c.ScheduleUTCOffsetHours), c.ScheduleUTCOffsetHours*60*60)
	return schedule.NewCalendar(c.ScheduleStartDate, c.ScheduleDays, loc)
}

// DatabaseURL is DB_URL with disable_prepared_binary_result=yes appended
// when DB_DISABLE_PREPARED_BINARY_RESULT is set. Keyword/value strings and
// URLs that already carry the flag are returned as is.
func (c Config) DatabaseURL() string {
	if !c.DBDisablePreparedBinary {
		return c.DBURL
	}
	u, err := url.Parse(c.DBURL)
	if err != nil || u.Scheme == "" {
		return c.DBURL
	}
	q := u.Query()
	if q.Has("disable_prepared_binary_result") {
		return c.DBURL
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c Config) AnubisCircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.AnubisCircuitEnabled,
		FailureThreshold: c.AnubisCircuitFailureCount,
		OpenTimeout:      c.AnubisCircuitOpenTimeout,
		HalfOpenMaxReq:   c.AnubisCircuitHalfOpenMaxReq,
	}
}
