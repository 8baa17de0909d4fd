// Package duckassist implements the duckassist command: a small shell that
// opens a DuckDB database with query_assistant registered.
package duckassist

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/duckassist/duckassist/internal/udf"
)

type Options struct {
	DBPath string
	Stdout io.Writer
	Stderr io.Writer
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("duckassist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", defaults.DBPath, "DuckDB database file (empty for in-memory)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		writeUsage(stderr)
		return 2
	}

	command := strings.TrimSpace(fs.Arg(0))
	switch command {
	case "ask":
		if fs.NArg() != 2 {
			_, _ = fmt.Fprintln(stderr, "usage: duckassist ask <prompt>")
			return 2
		}
		return runAsk(ctx, *dbPath, fs.Arg(1), stdout, stderr)
	case "exec":
		if fs.NArg() != 2 {
			_, _ = fmt.Fprintln(stderr, "usage: duckassist exec <sql>")
			return 2
		}
		return runExec(ctx, *dbPath, fs.Arg(1), stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return 2
	}
}

// runAsk evaluates one query_assistant invocation directly: a bind check with
// the prompt as a constant, then a single-row batch.
func runAsk(ctx context.Context, dbPath, prompt string, stdout, stderr io.Writer) int {
	db, err := openDatabase(dbPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "open database: %v\n", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	adapter := udf.NewAdapter(db)
	if err := adapter.Bind([]udf.Arg{{Constant: true, Value: prompt}}); err != nil {
		_, _ = fmt.Fprintf(stderr, "bind failed: %v\n", err)
		return 1
	}
	outputs, err := adapter.ExecuteBatch(ctx, []string{prompt})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invocation failed: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(stdout, outputs[0])
	return 0
}

func runExec(ctx context.Context, dbPath, sqlText string, stdout, stderr io.Writer) int {
	db, err := openDatabase(dbPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "open database: %v\n", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	if err := udf.Register(ctx, db); err != nil {
		_, _ = fmt.Fprintf(stderr, "register %s: %v\n", udf.FunctionName, err)
		return 1
	}

	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "execute query: %v\n", err)
		return 1
	}
	defer func() { _ = rows.Close() }()

	if err := printRows(rows, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "read results: %v\n", err)
		return 1
	}
	return 0
}

func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return db, nil
}

func printRows(rows *sql.Rows, stdout io.Writer) error {
	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("query columns: %w", err)
	}
	_, _ = fmt.Fprintln(stdout, strings.Join(columns, "\t"))

	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		fields := make([]string, len(values))
		for i, value := range values {
			switch typed := value.(type) {
			case []byte:
				fields[i] = string(typed)
			case nil:
				fields[i] = "NULL"
			default:
				fields[i] = fmt.Sprint(typed)
			}
		}
		_, _ = fmt.Fprintln(stdout, strings.Join(fields, "\t"))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

func writeUsage(stderr io.Writer) {
	_, _ = fmt.Fprint(stderr, `usage: duckassist [flags] <command>

commands:
  ask <prompt>   generate SQL for a natural-language request
  exec <sql>     run a SQL statement with query_assistant available

flags:
`)
	_, _ = fmt.Fprintln(stderr, "  -db path       DuckDB database file (default in-memory)")
}
