package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/thedyrex/pickems/internal/infrastructure/repository/postgres"
)

type command func(ctx context.Context, env *commandEnv, args []string) error

var commands = map[string]command{
	"up":      cmdUp,
	"down":    cmdDown,
	"version": cmdVersion,
	"force":   cmdForce,
	"goto":    cmdGoto,
	"migrate": cmdGoto,
	"seed":    cmdSeed,
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func cmdUp(_ context.Context, env *commandEnv, _ []string) error {
	m, err := env.migrate()
	if err != nil {
		return err
	}
	return applied(env, "migrations applied", m.Up())
}

func cmdDown(_ context.Context, env *commandEnv, args []string) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: down steps must be a positive integer, got %q", errUsage, args[0])
		}
		steps = n
	}
	m, err := env.migrate()
	if err != nil {
		return err
	}
	return applied(env, fmt.Sprintf("rolled back %d migration(s)", steps), m.Steps(-steps))
}

func cmdVersion(_ context.Context, env *commandEnv, _ []string) error {
	m, err := env.migrate()
	if err != nil {
		return err
	}
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func cmdForce(_ context.Context, env *commandEnv, args []string) error {
	version, err := versionArg(args, "force")
	if err != nil {
		return err
	}
	m, err := env.migrate()
	if err != nil {
		return err
	}
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	env.logger.Info("forced version", "version", version)
	return nil
}

func cmdGoto(_ context.Context, env *commandEnv, args []string) error {
	target, err := versionArg(args, "goto")
	if err != nil {
		return err
	}
	m, err := env.migrate()
	if err != nil {
		return err
	}
	return applied(env, fmt.Sprintf("migrated to version %d", target), m.Migrate(target))
}

// cmdSeed loads teams, the bracket template and day switches into an
// empty schema. A database that already has matches is left alone.
func cmdSeed(ctx context.Context, env *commandEnv, _ []string) error {
	cal, err := env.cfg.Calendar()
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}
	db, err := openDB(ctx, env.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.BootstrapSeed(ctx, db, cal); err != nil {
		return err
	}
	env.logger.Info("seed complete")
	return nil
}

func versionArg(args []string, cmd string) (uint, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s requires a version argument", errUsage, cmd)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid version %q", errUsage, args[0])
	}
	return uint(v), nil
}

func applied(env *commandEnv, msg string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		env.logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	env.logger.Info(msg)
	return nil
}
