package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

const runsTable = "runs"

// DuckDBRunStore keeps runs in a DuckDB table with one nullable column per metric.
type DuckDBRunStore struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	logger *logger.Logger
	now    func() time.Time
}

var _ RunStore = (*DuckDBRunStore)(nil)

// NewDuckDBRunStore opens the database at path, creating the runs table if needed.
// An empty path keeps the runs in memory.
func NewDuckDBRunStore(path string, log *logger.Logger) (*DuckDBRunStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePersistenceFailed, "failed to open DuckDB connection", err)
	}

	// one connection so in-memory databases are shared by every query
	db.SetMaxOpenConns(1)

	store := &DuckDBRunStore{
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger: log,
		now:    time.Now,
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (s *DuckDBRunStore) initialize() error {
	var columns strings.Builder

	for _, name := range types.AllStatNames {
		columns.WriteString(",\n\t\t\t" + name + " DOUBLE")
	}

	// Using raw SQL as Squirrel doesn't support CREATE TABLE
	query := `
		CREATE TABLE IF NOT EXISTS ` + runsTable + ` (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP,
			algorithm TEXT,
			tickers TEXT,
			period TEXT,
			bar_interval TEXT,
			params TEXT` + columns.String() + `
		)
	`

	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to create runs table", err)
	}

	return nil
}

// SaveRun implements RunStore.
func (s *DuckDBRunStore) SaveRun(ctx context.Context, record RunRecord) (RunRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if record.Timestamp.IsZero() {
		record.Timestamp = s.now()
	}

	// TIMESTAMP columns keep microseconds
	record.Timestamp = record.Timestamp.UTC().Truncate(time.Microsecond)

	params, err := json.Marshal(record.Params)
	if err != nil {
		return RunRecord{}, errors.Wrap(errors.ErrCodePersistenceFailed, "failed to encode strategy parameters", err)
	}

	columns := []string{"id", "created_at", "algorithm", "tickers", "period", "bar_interval", "params"}
	values := []interface{}{
		record.ID,
		record.Timestamp,
		string(record.Algorithm),
		strings.Join(record.Tickers, ","),
		record.Period,
		record.Interval,
		string(params),
	}

	for _, name := range types.AllStatNames {
		columns = append(columns, name)

		if value, ok := record.Stats[name]; ok {
			values = append(values, value)
		} else {
			values = append(values, nil)
		}
	}

	query, args, err := s.sq.Insert(runsTable).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return RunRecord{}, errors.Wrap(errors.ErrCodePersistenceFailed, "failed to build insert query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return RunRecord{}, errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to save run %s", record.ID)
	}

	s.logger.Debug("Saved run", zap.String("id", record.ID), zap.String("algorithm", string(record.Algorithm)))

	return record, nil
}

// ListRuns implements RunStore.
func (s *DuckDBRunStore) ListRuns(ctx context.Context, filter ListRunsFilter) ([]RunRecord, error) {
	columns := append([]string{"id", "created_at", "algorithm", "tickers", "period", "bar_interval", "params"}, types.AllStatNames...)

	builder := s.sq.Select(columns...).From(runsTable).OrderBy("created_at DESC", "id")
	if filter.Algorithm != "" {
		builder = builder.Where(squirrel.Eq{"algorithm": string(filter.Algorithm)})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build runs query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query runs", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0)

	for rows.Next() {
		var (
			record    RunRecord
			algorithm string
			tickers   string
			params    string
		)

		metrics := make([]sql.NullFloat64, len(types.AllStatNames))
		dest := []interface{}{&record.ID, &record.Timestamp, &algorithm, &tickers, &record.Period, &record.Interval, &params}

		for i := range metrics {
			dest = append(dest, &metrics[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan run", err)
		}

		record.Algorithm = types.StrategyType(algorithm)
		record.Timestamp = record.Timestamp.UTC()

		if tickers != "" {
			record.Tickers = strings.Split(tickers, ",")
		}

		if err := json.Unmarshal([]byte(params), &record.Params); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to decode parameters of run %s", record.ID)
		}

		record.Stats = make(types.SimulationStats)

		for i, name := range types.AllStatNames {
			if metrics[i].Valid {
				record.Stats[name] = metrics[i].Float64
			}
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate runs", err)
	}

	return records, nil
}

// Statistics implements RunStore.
func (s *DuckDBRunStore) Statistics(ctx context.Context) ([]AlgorithmStatistics, error) {
	query, args, err := s.sq.
		Select(
			"algorithm",
			"COUNT(*)",
			"AVG("+types.StatStrategyResult+")",
			"MIN("+types.StatStrategyResult+")",
			"MAX("+types.StatStrategyResult+")",
			"AVG("+types.StatSharpeRatio+")",
			"AVG("+types.StatAlpha+")",
		).
		From(runsTable).
		GroupBy("algorithm").
		OrderBy("algorithm").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build statistics query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query statistics", err)
	}
	defer rows.Close()

	statistics := make([]AlgorithmStatistics, 0)

	for rows.Next() {
		var (
			algorithm                        string
			runs                             int64
			meanResult, minResult, maxResult sql.NullFloat64
			meanSharpe, meanAlpha            sql.NullFloat64
		)

		if err := rows.Scan(&algorithm, &runs, &meanResult, &minResult, &maxResult, &meanSharpe, &meanAlpha); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan statistics", err)
		}

		statistics = append(statistics, AlgorithmStatistics{
			Algorithm:          types.StrategyType(algorithm),
			Runs:               int(runs),
			MeanStrategyResult: fromNull(meanResult),
			MinStrategyResult:  fromNull(minResult),
			MaxStrategyResult:  fromNull(maxResult),
			MeanSharpeRatio:    fromNull(meanSharpe),
			MeanAlpha:          fromNull(meanAlpha),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate statistics", err)
	}

	return statistics, nil
}

// Close closes the database.
func (s *DuckDBRunStore) Close() error {
	return s.db.Close()
}

func fromNull(v sql.NullFloat64) optional.Option[float64] {
	if !v.Valid {
		return optional.None[float64]()
	}

	return optional.Some(v.Float64)
}
