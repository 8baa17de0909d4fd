package schemactx

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestExtractConcatenatesWithoutSeparator(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sql"}).
			AddRow(`CREATE TABLE customers(id INTEGER, country VARCHAR, subscription_date DATE);`).
			AddRow(`CREATE TABLE orders(id INTEGER, customer_id INTEGER);`))

	got, err := Extract(context.Background(), db)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := `CREATE TABLE customers(id INTEGER, country VARCHAR, subscription_date DATE);` +
		`CREATE TABLE orders(id INTEGER, customer_id INTEGER);`
	if got != want {
		t.Fatalf("Extract() = %q, want %q", got, want)
	}
	assertSQLMock(t, mock)
}

func TestExtractEmptyCatalog(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sql"}))

	got, err := Extract(context.Background(), db)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "" {
		t.Fatalf("Extract() = %q, want empty context", got)
	}
	assertSQLMock(t, mock)
}

func TestExtractSkipsNullDDL(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sql"}).
			AddRow(nil).
			AddRow(`CREATE TABLE t(a INTEGER);`))

	got, err := Extract(context.Background(), db)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != `CREATE TABLE t(a INTEGER);` {
		t.Fatalf("Extract() = %q", got)
	}
	assertSQLMock(t, mock)
}

func TestExtractPropagatesQueryFailure(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnError(errors.New("no active database"))

	if _, err := Extract(context.Background(), db); err == nil {
		t.Fatal("expected error when catalog query fails")
	}
	assertSQLMock(t, mock)
}

func TestExtractRequiresConnection(t *testing.T) {
	if _, err := Extract(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil connection")
	}
}

func TestExtractReflectsCatalogChanges(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sql"}).
			AddRow(`CREATE TABLE customers(id INTEGER);`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sql FROM duckdb_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sql"}).
			AddRow(`CREATE TABLE customers(id INTEGER);`).
			AddRow(`CREATE TABLE invoices(id INTEGER);`))

	first, err := Extract(context.Background(), db)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := Extract(context.Background(), db)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if first == second {
		t.Fatal("second extraction should observe the new table")
	}
	if second != `CREATE TABLE customers(id INTEGER);CREATE TABLE invoices(id INTEGER);` {
		t.Fatalf("second Extract() = %q", second)
	}
	assertSQLMock(t, mock)
}
