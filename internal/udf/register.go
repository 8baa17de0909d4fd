package udf

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	duckdb "github.com/marcboeker/go-duckdb/v2"
)

type scalarFunc struct {
	adapter *Adapter
	varchar duckdb.TypeInfo
}

func (f *scalarFunc) Config() duckdb.ScalarFuncConfig {
	return duckdb.ScalarFuncConfig{
		InputTypeInfos: []duckdb.TypeInfo{f.varchar},
		ResultTypeInfo: f.varchar,
		// The result depends on the live catalog, not just the arguments.
		Volatile: true,
	}
}

func (f *scalarFunc) Executor() duckdb.ScalarFuncExecutor {
	return duckdb.ScalarFuncExecutor{RowExecutor: f.executeRow}
}

func (f *scalarFunc) executeRow(values []driver.Value) (any, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("query_assistant expects exactly 1 argument, got %d", len(values))
	}
	prompt, ok := values[0].(string)
	if !ok {
		return nil, fmt.Errorf("query_assistant prompt must be VARCHAR, got %T", values[0])
	}
	outputs, err := f.adapter.ExecuteBatch(context.Background(), []string{prompt})
	if err != nil {
		return nil, err
	}
	return outputs[0], nil
}

// Register exposes query_assistant as a scalar function on a database opened
// with the duckdb driver. Registration is per database instance; the engine
// itself is still constructed lazily on first invocation.
func Register(ctx context.Context, db *sql.DB) error {
	varchar, err := duckdb.NewTypeInfo(duckdb.TYPE_VARCHAR)
	if err != nil {
		return fmt.Errorf("create varchar type info: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	fn := &scalarFunc{adapter: NewAdapter(db), varchar: varchar}
	if err := duckdb.RegisterScalarUDF(conn, FunctionName, fn); err != nil {
		return fmt.Errorf("register %s: %w", FunctionName, err)
	}
	return nil
}
