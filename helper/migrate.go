package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"shareit/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var errUnknownAction = errors.New("unknown migration action, use 'up', 'down', 'drop' or 'step-up'")

var actions = map[Action]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:   (*migrate.Migrate).Down,
}

// ParseAction validates a migration direction given on the command line.
func ParseAction(raw string) (Action, error) {
	action := Action(raw)
	if _, ok := actions[action]; !ok {
		return "", errUnknownAction
	}

	return action, nil
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// connectionString targets the write database; migrations never run on a replica.
func connectionString(config *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)
}

func Runner(config *config.Config, action Action) error {
	run, ok := actions[action]
	if !ok {
		return errUnknownAction
	}

	mig, err := migrate.New(migrationSource, connectionString(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err = run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
