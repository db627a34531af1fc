package mysql

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	"sales-service/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies the embedded schema migrations in dir. db must allow multi
// statements. The migrator closes db when it is done.
func Migrate(db *sql.DB, dir Direction, logg *logger.Logger) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "open migration source")
	}
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "open migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "init migrator")
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logg.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return errors.Errorf("unknown migration direction %q", dir)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "migrate %s", dir)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return errors.Wrap(verr, "read migration version")
	}
	logg.Info("migrations applied", "direction", string(dir), "version", version, "dirty", dirty)
	return nil
}
