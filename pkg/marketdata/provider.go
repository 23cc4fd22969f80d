package marketdata

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderFile    ProviderType = "file"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// DefaultCacheTTL is how long fetched series stay cached.
const DefaultCacheTTL = 12 * time.Hour

// Provider fetches historical bars for a ticker.
type Provider interface {
	// Fetch returns the bars of ticker covering period at interval, oldest first.
	// It fails with a data-unavailable error when there are no bars.
	// example:
	// Fetch(ctx, "AAPL", "12mo", "1d")
	Fetch(ctx context.Context, ticker string, period string, interval string) (types.PriceSeries, error)
}

// Config selects and configures a provider.
type Config struct {
	Type          ProviderType
	DataDir       string
	PolygonAPIKey string
	// CacheTTL wraps the provider in a CachedProvider when positive.
	CacheTTL time.Duration
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(config Config, log *logger.Logger) (Provider, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	var (
		provider Provider
		err      error
	)

	switch config.Type {
	case ProviderFile:
		provider, err = NewFileProvider(config.DataDir, log)
	case ProviderPolygon:
		provider, err = NewPolygonProvider(config.PolygonAPIKey, log)
	case ProviderBinance:
		provider, err = NewBinanceProvider(log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported market data provider: %s", config.Type)
	}

	if err != nil {
		return nil, err
	}

	if config.CacheTTL > 0 {
		return NewCachedProvider(provider, config.CacheTTL, log), nil
	}

	return provider, nil
}

// tickerPattern matches plain symbols such as AAPL, BRK.B, ^GSPC or X:BTCUSD.
var tickerPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.^=:-]*$`)

// fetchRequest is a validated Fetch call.
type fetchRequest struct {
	ticker   string
	period   types.Period
	interval Interval
}

func parseFetchRequest(ticker, period, interval string) (fetchRequest, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return fetchRequest{}, errors.New(errors.ErrCodeMissingParameter, "ticker is required")
	}

	if !tickerPattern.MatchString(ticker) {
		return fetchRequest{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid ticker %q", ticker)
	}

	p, err := types.ParsePeriod(period)
	if err != nil {
		return fetchRequest{}, err
	}

	i, err := ParseInterval(interval)
	if err != nil {
		return fetchRequest{}, err
	}

	return fetchRequest{ticker: ticker, period: p, interval: i}, nil
}

// newSeries sorts bars by time, drops duplicate timestamps and fails when nothing is left.
func newSeries(req fetchRequest, bars []types.MarketData) (types.PriceSeries, error) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	unique := make([]types.MarketData, 0, len(bars))
	for _, bar := range bars {
		if len(unique) > 0 && bar.Time.Equal(unique[len(unique)-1].Time) {
			continue
		}

		unique = append(unique, bar)
	}

	if len(unique) == 0 {
		return types.PriceSeries{}, errors.Newf(errors.ErrCodeDataNotFound,
			"no bars for %s over %s at %s", req.ticker, req.period, req.interval)
	}

	return types.PriceSeries{Symbol: req.ticker, Bars: unique}, nil
}
