// Package database reads houses from a PostgreSQL table.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/housing/internal/config"
	"github.com/JonMunkholm/housing/internal/core"
	"github.com/JonMunkholm/housing/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Source loads houses from one table, one row per house. Every column is
// read as text and coerced by the same rules as a CSV file, so a value that
// would be rejected in a file is rejected here too.
type Source struct {
	pool    *pgxpool.Pool
	table   string
	query   string
	timeout time.Duration
}

// Open connects to the database described by cfg and verifies the
// connection. The caller must Close the returned Source.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Source, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Source{
		pool:    pool,
		table:   cfg.Table,
		query:   buildQuery(cfg.Table, cfg.OrderBy),
		timeout: cfg.QueryTimeout,
	}, nil
}

// Close releases the connection pool.
func (s *Source) Close() {
	s.pool.Close()
}

// Name identifies the source as postgres:<table>.
func (s *Source) Name() string {
	return "postgres:" + s.table
}

// Load reads every row of the table in ORDER BY order.
func (s *Source) Load(ctx context.Context) ([]core.House, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logging.FromContext(ctx).Debug("querying houses", "table", s.table)

	rows, err := s.pool.Query(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}

	return core.LoadRows(toRows(records))
}

// buildQuery selects the house columns as text from table. table may be
// schema-qualified ("public.houses"). An empty orderBy leaves the order to
// the database.
func buildQuery(table, orderBy string) string {
	cols := core.ColumnNames()
	selects := make([]string, len(cols))
	for i, c := range cols {
		id := pgx.Identifier{c}.Sanitize()
		selects[i] = id + "::text AS " + id
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selects, ", "))
	b.WriteString(" FROM ")
	b.WriteString(qualifiedName(table))
	if orderBy = strings.TrimSpace(orderBy); orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(pgx.Identifier{orderBy}.Sanitize())
	}
	return b.String()
}

func qualifiedName(table string) string {
	parts := strings.Split(strings.TrimSpace(table), ".")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return pgx.Identifier(parts).Sanitize()
}

// toRows converts collected records to loader rows. NULL columns are left
// out so the loader reports them as missing fields.
func toRows(records []map[string]any) []core.Row {
	out := make([]core.Row, len(records))
	for i, rec := range records {
		row := make(core.Row, len(rec))
		for k, v := range rec {
			switch val := v.(type) {
			case nil:
				continue
			case string:
				row[k] = val
			default:
				row[k] = fmt.Sprint(val)
			}
		}
		out[i] = row
	}
	return out
}
