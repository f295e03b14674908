package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/thedyrex/pickems/internal/config"
	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/domain/team"
	"github.com/thedyrex/pickems/internal/domain/user"
	"github.com/thedyrex/pickems/internal/infrastructure/account/anubis"
	cacherepo "github.com/thedyrex/pickems/internal/infrastructure/repository/cache"
	"github.com/thedyrex/pickems/internal/infrastructure/repository/memory"
	"github.com/thedyrex/pickems/internal/infrastructure/repository/postgres"
	"github.com/thedyrex/pickems/internal/interfaces/httpapi"
	"github.com/thedyrex/pickems/internal/platform/cache"
	"github.com/thedyrex/pickems/internal/platform/id"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	matches     bracket.Repository
	picks       pick.Repository
	scores      scoring.Repository
	days        schedule.Repository
	teams       team.Repository
	users       user.Repository
	leaderboard leaderboard.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return nil, fmt.Errorf("build schedule calendar: %w", err)
	}

	app := &App{}
	var repos repositories
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory storage")
		repos = memoryRepositories(cal)
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		app.db = db

		if cfg.DBSeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db, cal); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
	}
	if cfg.CacheEnabled {
		repos = withCache(repos, cache.NewStore(cfg.CacheTTL))
	}

	matches, err := repos.matches.List(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load bracket: %w", err)
	}
	graph, err := bracket.NewGraph(matches)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build bracket graph: %w", err)
	}

	bracketService := usecase.NewBracketService(repos.matches, graph, logger)
	scoringService := usecase.NewScoringService(repos.matches, repos.picks, repos.scores, logger)
	scoringService.SetWorkers(cfg.ScoringWorkers)
	gradingService := usecase.NewGradingService(repos.matches, repos.picks, bracketService, scoringService, logger)
	dayService := usecase.NewDayService(repos.days, repos.matches, cal, logger)
	pickService := usecase.NewPickService(repos.matches, repos.picks, repos.scores, dayService, logger)

	verifier := anubis.NewClient(anubis.Config{
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectPath,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CacheTTL:       cfg.AnubisCacheTTL,
		CircuitBreaker: cfg.AnubisCircuitBreaker(),
	}, user.NewAdminList(cfg.AdminEmails), logger)

	handler := httpapi.NewHandler(
		bracketService,
		gradingService,
		pickService,
		scoringService,
		dayService,
		usecase.NewLeaderboardService(repos.leaderboard),
		usecase.NewTeamService(repos.teams),
		usecase.NewProfileService(repos.users),
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, id.NewUUIDGenerator(), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage", storageName(cfg),
		"cache_enabled", cfg.CacheEnabled,
		"matches", len(matches),
		"schedule_days", len(cal.Days()),
	)
	return app, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DatabaseURL()
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func memoryRepositories(cal schedule.Calendar) repositories {
	scores := memory.NewScoreRepository()
	users := memory.NewUserRepository()
	return repositories{
		matches:     memory.NewMatchRepository(memory.SeedMatches()),
		picks:       memory.NewPickRepository(),
		scores:      scores,
		days:        memory.NewDayRepository(memory.SeedDaySettings(cal)),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		users:       users,
		leaderboard: memory.NewLeaderboardRepository(scores, users),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		matches:     postgres.NewMatchRepository(db),
		picks:       postgres.NewPickRepository(db),
		scores:      postgres.NewScoreRepository(db),
		days:        postgres.NewDayRepository(db),
		teams:       postgres.NewTeamRepository(db),
		users:       postgres.NewUserRepository(db),
		leaderboard: postgres.NewLeaderboardRepository(db),
	}
}

// withCache fronts the read-heavy repositories. Score and profile writes
// evict the cached leaderboard.
func withCache(repos repositories, store *cache.Store) repositories {
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	repos.leaderboard = cacherepo.NewLeaderboardRepository(repos.leaderboard, store)
	repos.scores = cacherepo.NewScoreRepository(repos.scores, store)
	repos.users = cacherepo.NewUserRepository(repos.users, store)
	return repos
}

func storageName(cfg config.Config) string {
	if cfg.DBURL == "" {
		return "memory"
	}
	return "postgres"
}
