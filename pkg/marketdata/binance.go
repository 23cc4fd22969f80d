package marketdata

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// binanceKlinesLimit is the page size of the klines endpoint.
const binanceKlinesLimit = 500

// BinanceKlinesFetcher returns one page of klines.
type BinanceKlinesFetcher interface {
	Klines(ctx context.Context, symbol string, interval string, startTime int64, endTime int64) ([]*binance.Kline, error)
}

type binanceRESTClient struct {
	client *binance.Client
}

func (c binanceRESTClient) Klines(ctx context.Context, symbol string, interval string, startTime int64, endTime int64) ([]*binance.Kline, error) {
	return c.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startTime).
		EndTime(endTime).
		Limit(binanceKlinesLimit).
		Do(ctx)
}

// BinanceProvider fetches crypto klines from the public Binance API.
type BinanceProvider struct {
	client BinanceKlinesFetcher
	now    func() time.Time
	logger *logger.Logger
}

// NewBinanceProvider creates a provider on the public endpoints. No key is needed.
func NewBinanceProvider(log *logger.Logger) (*BinanceProvider, error) {
	return newBinanceProviderWithClient(binanceRESTClient{client: binance.NewClient("", "")}, time.Now, log), nil
}

func newBinanceProviderWithClient(client BinanceKlinesFetcher, now func() time.Time, log *logger.Logger) *BinanceProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceProvider{
		client: client,
		now:    now,
		logger: log,
	}
}

// Fetch implements Provider. Tickers are upper-cased trading pairs such as BTCUSDT.
func (p *BinanceProvider) Fetch(ctx context.Context, ticker string, period string, interval string) (types.PriceSeries, error) {
	req, err := parseFetchRequest(ticker, period, interval)
	if err != nil {
		return types.PriceSeries{}, err
	}

	end := p.now()
	endTimeMillis := end.UnixMilli()
	// Use pagination to handle Binance API limits (max 500 data points per request)
	currentStartTime := req.period.Start(end).UnixMilli()

	bars := make([]types.MarketData, 0)

	for {
		klines, err := p.client.Klines(ctx, req.ticker, req.interval.BinanceInterval(), currentStartTime, endTimeMillis)
		if err != nil {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch klines for %s from Binance", req.ticker)
		}

		page, err := klinesToMarketData(req.ticker, klines)
		if err != nil {
			return types.PriceSeries{}, err
		}

		bars = append(bars, page...)

		// last page
		if len(klines) < binanceKlinesLimit {
			break
		}

		// Use the close time of the last kline + 1ms to avoid duplicates
		currentStartTime = klines[len(klines)-1].CloseTime + 1
		if currentStartTime >= endTimeMillis {
			break
		}
	}

	p.logger.Debug("Fetched binance klines", zap.String("ticker", req.ticker), zap.Int("bars", len(bars)))

	return newSeries(req, bars)
}

// klinesToMarketData converts Binance kline data to bars. The open time is the bar time.
func klinesToMarketData(ticker string, klines []*binance.Kline) ([]types.MarketData, error) {
	bars := make([]types.MarketData, 0, len(klines))

	for _, k := range klines {
		values := make([]float64, 5)

		for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeInvalidMarketData, err, "invalid kline value %q for %s", raw, ticker)
			}

			values[i] = v
		}

		bars = append(bars, types.MarketData{
			Symbol: ticker,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return bars, nil
}
