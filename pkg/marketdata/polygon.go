package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

const polygonAggsLimit = 50000

// PolygonAggsIterator is the part of the polygon aggregate iterator the provider uses.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the part of the polygon REST client the provider uses.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRESTClient struct {
	client *polygon.Client
}

func (c polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return c.client.ListAggs(ctx, params, options...)
}

// PolygonProvider fetches stock aggregates from polygon.io.
type PolygonProvider struct {
	client PolygonAPIClient
	now    func() time.Time
	logger *logger.Logger
}

// NewPolygonProvider creates a provider authenticated with apiKey.
func NewPolygonProvider(apiKey string, log *logger.Logger) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires an API key")
	}

	return newPolygonProviderWithClient(polygonRESTClient{client: polygon.New(apiKey)}, time.Now, log), nil
}

func newPolygonProviderWithClient(client PolygonAPIClient, now func() time.Time, log *logger.Logger) *PolygonProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonProvider{
		client: client,
		now:    now,
		logger: log,
	}
}

// Fetch implements Provider. The window ends now and starts one period earlier.
func (p *PolygonProvider) Fetch(ctx context.Context, ticker string, period string, interval string) (types.PriceSeries, error) {
	req, err := parseFetchRequest(ticker, period, interval)
	if err != nil {
		return types.PriceSeries{}, err
	}

	end := p.now()
	start := req.period.Start(end)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     req.ticker,
		Multiplier: req.interval.Multiplier(),
		Timespan:   req.interval.PolygonTimespan(),
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(polygonAggsLimit)

	p.logger.Debug("Fetching polygon aggregates",
		zap.String("ticker", req.ticker),
		zap.Time("from", start),
		zap.Time("to", end),
		zap.String("interval", string(req.interval)),
	)

	iter := p.client.ListAggs(ctx, params)

	bars := make([]types.MarketData, 0)

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.MarketData{
			Symbol: req.ticker,
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if iter.Err() != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(), "error iterating polygon aggregates for %s", req.ticker)
	}

	return newSeries(req, bars)
}
