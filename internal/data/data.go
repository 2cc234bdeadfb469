package data

import (
	"database/sql"
	"fmt"
	"strings"

	"go-workforce/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewEmployeeRepo,
	NewRedisClient,
	NewEmployeeCache,
	NewCachedEmployeeRepo,
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	position TEXT NOT NULL,
	salary BIGINT NOT NULL,
	hired_at TIMESTAMP NOT NULL,
	terminated BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS outbox_messages (
	uuid TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	metadata TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Data wraps the SQL database handle shared by repositories and sessions.
type Data struct {
	db     *sql.DB
	driver string
}

// NewData opens the database, creates the schema and returns the shared
// Data value with its cleanup function.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	driver := "sqlite3"
	source := "file:workforce?mode=memory&cache=shared&_fk=1"
	if c != nil && c.Database != nil {
		if c.Database.Driver != "" {
			driver = c.Database.Driver
		}
		if c.Database.Source != "" {
			source = c.Database.Source
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite3" {
		// Serialize access; the shared in-memory database does not
		// tolerate concurrent writers.
		db.SetMaxOpenConns(1)
	}

	d := &Data{db: db, driver: driver}
	if err := d.createSchema(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if err := d.db.Close(); err != nil {
			helper.Error(err)
		}
	}

	return d, cleanup, nil
}

func (d *Data) createSchema() error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed creating schema: %w", err)
		}
	}
	return nil
}

// DB returns the underlying database handle.
func (d *Data) DB() *sql.DB {
	return d.db
}

// Rebind rewrites ? placeholders to $n for the postgres driver.
func (d *Data) Rebind(query string) string {
	if d.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
