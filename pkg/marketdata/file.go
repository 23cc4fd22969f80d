package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// FileProvider reads bars from Parquet or CSV files in a directory. For ticker AAPL
// at interval 1d it looks for AAPL_1d.parquet, AAPL.parquet, AAPL_1d.csv and
// AAPL.csv in that order. Files need time, open, high, low, close and volume columns.
//
// The period is counted back from the newest bar in the file, so results do not
// depend on the current date.
type FileProvider struct {
	dir    string
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewFileProvider creates a provider reading from dir.
func NewFileProvider(dir string, log *logger.Logger) (*FileProvider, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "file provider requires a data directory")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &FileProvider{
		dir:    dir,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Fetch implements Provider.
func (f *FileProvider) Fetch(ctx context.Context, ticker string, period string, interval string) (types.PriceSeries, error) {
	req, err := parseFetchRequest(ticker, period, interval)
	if err != nil {
		return types.PriceSeries{}, err
	}

	path, reader, err := f.locate(req)
	if err != nil {
		return types.PriceSeries{}, err
	}

	f.logger.Debug("Reading market data file", zap.String("path", path), zap.String("ticker", req.ticker))

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	// Create a view from the file - using raw SQL as Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT
			CAST(time AS TIMESTAMP) AS time,
			CAST(open AS DOUBLE) AS open,
			CAST(high AS DOUBLE) AS high,
			CAST(low AS DOUBLE) AS low,
			CAST(close AS DOUBLE) AS close,
			CAST(volume AS DOUBLE) AS volume
		FROM %s('%s');
	`, reader, escapeLiteral(path))

	if _, err := db.ExecContext(ctx, query); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read %s", path)
	}

	var newest sql.NullTime

	row := f.sq.Select("MAX(time)").From("market_data").RunWith(db).QueryRowContext(ctx)
	if err := row.Scan(&newest); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read the newest bar of %s", path)
	}

	if !newest.Valid {
		return newSeries(req, nil)
	}

	rows, err := f.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.GtOrEq{"time": req.period.Start(newest.Time)}).
		OrderBy("time ASC").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", path)
	}
	defer rows.Close()

	bars := make([]types.MarketData, 0)

	for rows.Next() {
		bar := types.MarketData{Symbol: req.ticker}
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to scan a bar of %s", path)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to iterate %s", path)
	}

	return newSeries(req, bars)
}

// locate returns the first existing candidate file and the DuckDB table function reading it.
func (f *FileProvider) locate(req fetchRequest) (string, string, error) {
	candidates := []struct {
		name   string
		reader string
	}{
		{fmt.Sprintf("%s_%s.parquet", req.ticker, req.interval), "read_parquet"},
		{req.ticker + ".parquet", "read_parquet"},
		{fmt.Sprintf("%s_%s.csv", req.ticker, req.interval), "read_csv_auto"},
		{req.ticker + ".csv", "read_csv_auto"},
	}

	for _, c := range candidates {
		path := filepath.Join(f.dir, c.name)
		if rel, err := filepath.Rel(f.dir, path); err != nil || rel != c.name {
			return "", "", errors.Newf(errors.ErrCodeInvalidParameter, "ticker %s resolves outside %s", req.ticker, f.dir)
		}

		if _, err := os.Stat(path); err == nil {
			return path, c.reader, nil
		}
	}

	return "", "", errors.Newf(errors.ErrCodeDataNotFound, "no data file for %s at %s in %s", req.ticker, req.interval, f.dir)
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
