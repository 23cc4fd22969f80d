package strategy

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

var seriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func newSeries(symbol string, closes []float64) types.PriceSeries {
	bars := make([]types.MarketData, len(closes))
	for i, c := range closes {
		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   seriesStart.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return types.NewPriceSeries(symbol, bars)
}

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}

	return closes
}

func countSignals(signals []types.Signal, want types.Signal) int {
	count := 0

	for _, s := range signals {
		if s == want {
			count++
		}
	}

	return count
}
