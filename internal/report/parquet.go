package report

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// parquetWriter buffers rows in an in-memory DuckDB table and exports them with COPY.
type parquetWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// newParquetWriter creates the table described by columns ("name TYPE" pairs) and
// prepares the insert statement inside a transaction.
func newParquetWriter(outputPath string, columns []string) (_ *parquetWriter, err error) {
	w := &parquetWriter{outputPath: outputPath}

	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportFailed, "failed to open DuckDB connection", err)
	}

	// an in-memory database only lives on its own connection
	w.db.SetMaxOpenConns(1)

	if _, err = w.db.Exec(fmt.Sprintf("CREATE TABLE report (%s)", strings.Join(columns, ", "))); err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportFailed, "failed to begin transaction", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	w.stmt, err = w.tx.Prepare(fmt.Sprintf("INSERT INTO report VALUES (%s)", placeholders))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportFailed, "failed to prepare statement", err)
	}

	return w, nil
}

func (w *parquetWriter) Write(values ...interface{}) error {
	if _, err := w.stmt.Exec(values...); err != nil {
		return errors.Wrap(errors.ErrCodeReportFailed, "failed to insert row", err)
	}

	return nil
}

// Finalize commits the rows and exports them to the output path.
func (w *parquetWriter) Finalize() error {
	if err := w.stmt.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeReportFailed, "failed to close statement", err)
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeReportFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	path := strings.ReplaceAll(w.outputPath, "'", "''")
	if _, err := w.db.Exec(fmt.Sprintf(`COPY report TO '%s' (FORMAT PARQUET)`, path)); err != nil {
		return errors.Wrapf(errors.ErrCodeReportFailed, err, "failed to export %s", w.outputPath)
	}

	return nil
}

// Close releases the statement, the transaction and the connection.
func (w *parquetWriter) Close() {
	if w.stmt != nil {
		w.stmt.Close()
		w.stmt = nil
	}

	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		w.db.Close()
		w.db = nil
	}
}
