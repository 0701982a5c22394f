package db

import (
	"fmt"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"
)

// NewClickHouse opens a *sqlx.DB against ClickHouse for the analytics
// read/write paths.
func NewClickHouse(dsn string, opts Opts) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty ClickHouse DSN")
	}
	db, err := sqlx.Open("clickhouse", dsn)
	if err != nil {
		return nil, err
	}
	applyPool(db, opts)
	if err := ping(db, opts.PingTimeout); err != nil {
		return nil, err
	}
	return db, nil
}
