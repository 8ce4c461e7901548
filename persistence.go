package yoga

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenDB opens a bun database for the given driver name
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite, "sqlite3":
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open sqlite database")
		}
		// in memory databases live per connection
		if strings.Contains(dsn, ":memory:") {
			sqldb.SetMaxOpenConns(1)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case DriverPostgres, "pg":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open postgres database")
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, goerrors.New("unsupported database driver "+driver, goerrors.CategoryBadInput).
			WithMetadata(map[string]any{"driver": driver})
	}
}

// Migrate creates the tables used by the repositories if missing
func Migrate(ctx context.Context, db bun.IDB) error {
	queries := []*bun.CreateTableQuery{
		db.NewCreateTable().Model((*User)(nil)).IfNotExists(),
		db.NewCreateTable().Model((*Teacher)(nil)).IfNotExists(),
		db.NewCreateTable().Model((*Session)(nil)).IfNotExists().
			ForeignKey(`("teacher_id") REFERENCES "teachers" ("id") ON DELETE SET NULL`),
		db.NewCreateTable().Model((*Participation)(nil)).IfNotExists().
			ForeignKey(`("session_id") REFERENCES "sessions" ("id") ON DELETE CASCADE`).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`),
	}

	for _, q := range queries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := q.Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to migrate schema")
		}
	}
	return nil
}
