package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/thedyrex/pickems/internal/config"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	logger := logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatConsole, Service: "pickems-migration"})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], logger); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				fmt.Fprintln(os.Stderr, err)
			}
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return errors.New("DB_URL is required")
	}

	env := &commandEnv{cfg: cfg, logger: logger.With("command", name)}
	defer env.close()

	return cmd(ctx, env, args[1:])
}

// commandEnv opens the migrator lazily so seed never touches the
// migrations directory.
type commandEnv struct {
	cfg      config.Config
	logger   *logging.Logger
	migrator *migrate.Migrate
}

func (e *commandEnv) migrate() (*migrate.Migrate, error) {
	if e.migrator != nil {
		return e.migrator, nil
	}
	dir, err := resolveMigrationsDir()
	if err != nil {
		return nil, err
	}
	m, err := migrate.New("file://"+filepath.ToSlash(dir), e.cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = migrateLog{logger: e.logger, verbose: os.Getenv("MIGRATE_VERBOSE") == "true"}
	e.migrator = m
	e.logger.Info("migrator ready", "source", dir)
	return m, nil
}

func (e *commandEnv) close() {
	if e.migrator == nil {
		return
	}
	srcErr, dbErr := e.migrator.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		e.logger.Warn("close migrator", "error", err)
	}
}

// migrateLog routes migrate's progress lines into the service logger.
type migrateLog struct {
	logger  *logging.Logger
	verbose bool
}

func (l migrateLog) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLog) Verbose() bool { return l.verbose }

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{os.Getenv("MIGRATIONS_DIR"), "./db/migrations", "/app/db/migrations"}
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migrations directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <%s> [args]\n", bin, strings.Join(commandNames(), "|"))
	fmt.Fprintln(os.Stderr, "examples:")
	for _, ex := range []string{"up", "down 1", "version", "force 1", "goto 1", "seed"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", bin, ex)
	}
}
