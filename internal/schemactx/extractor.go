// Package schemactx assembles the schema context used to ground SQL
// generation: the DDL of every table visible in the active DuckDB catalog.
package schemactx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/duckassist/duckassist/internal/observability"
)

const ddlQuery = `SELECT sql FROM duckdb_tables()`

// Querier is the subset of *sql.DB the extractor needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Extract reads the CREATE TABLE statement of every table in the catalog and
// concatenates them in enumeration order. The statements are appended with no
// separator. The context is rebuilt on every call, so catalog changes between
// invocations are always reflected.
func Extract(ctx context.Context, db Querier) (string, error) {
	text, err := extract(ctx, db)
	observability.ObserveContextExtraction(err)
	return text, err
}

func extract(ctx context.Context, db Querier) (string, error) {
	if db == nil {
		return "", fmt.Errorf("active connection is required")
	}

	rows, err := db.QueryContext(ctx, ddlQuery)
	if err != nil {
		return "", fmt.Errorf("query catalog tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builder strings.Builder
	for rows.Next() {
		var ddl sql.NullString
		if err := rows.Scan(&ddl); err != nil {
			return "", fmt.Errorf("scan table ddl: %w", err)
		}
		if ddl.Valid {
			builder.WriteString(ddl.String)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate catalog tables: %w", err)
	}

	return builder.String(), nil
}
