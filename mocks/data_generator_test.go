package mocks

import (
	"testing"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 100

	data := gen.Generate(config)

	if len(data) != 100 {
		t.Errorf("expected 100 data points, got %d", len(data))
	}

	for i := 1; i < len(data); i++ {
		if actual := data[i].Time.Sub(data[i-1].Time); actual != config.Interval {
			t.Errorf("unexpected interval at index %d: expected %v, got %v", i, config.Interval, actual)
		}
	}

	for i, d := range data {
		if d.Symbol != config.Symbol {
			t.Errorf("expected symbol %s at index %d, got %s", config.Symbol, i, d.Symbol)
		}

		if d.Open <= 0 || d.High <= 0 || d.Low <= 0 || d.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f", i, d.Open, d.High, d.Low, d.Close)
		}

		if d.High < d.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, d.High, d.Low)
		}
	}
}

func TestDataGenerator_GenerateSeriesIsValid(t *testing.T) {
	series := NewDataGenerator(7).GenerateSeries(DefaultConfig())

	if series.Len() != 252 {
		t.Errorf("expected 252 bars, got %d", series.Len())
	}

	if err := series.Validate(); err != nil {
		t.Errorf("generated series is invalid: %v", err)
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	config := DefaultConfig()
	config.Count = 10

	data1 := NewDataGenerator(42).Generate(config)
	data2 := NewDataGenerator(42).Generate(config)

	for i := range data1 {
		if data1[i].Close != data2[i].Close {
			t.Errorf("data not reproducible at index %d: got %f and %f", i, data1[i].Close, data2[i].Close)
		}
	}
}

func TestDataGenerator_DifferentSeeds(t *testing.T) {
	config := DefaultConfig()
	config.Count = 10

	data1 := NewDataGenerator(42).Generate(config)
	data2 := NewDataGenerator(123).Generate(config)

	sameCount := 0
	for i := range data1 {
		if data1[i].Close == data2[i].Close {
			sameCount++
		}
	}

	if sameCount == len(data1) {
		t.Error("different seeds produced identical data")
	}
}

func TestDataGenerator_GenerateCorrelated(t *testing.T) {
	gen := NewDataGenerator(1)
	base := gen.GenerateSeries(DefaultConfig())
	pair := gen.GenerateCorrelated("PAIR", base, 1.5, 0.001)

	if pair.Len() != base.Len() {
		t.Fatalf("expected %d bars, got %d", base.Len(), pair.Len())
	}

	for i := range pair.Bars {
		if !pair.Bars[i].Time.Equal(base.Bars[i].Time) {
			t.Errorf("timestamps differ at index %d", i)
		}
	}

	if err := pair.Validate(); err != nil {
		t.Errorf("correlated series is invalid: %v", err)
	}
}

func TestGenerate10K(t *testing.T) {
	data := Generate10K("TEST")

	if len(data) != 10000 {
		t.Errorf("expected 10000 data points, got %d", len(data))
	}

	if data[0].Symbol != "TEST" {
		t.Errorf("expected symbol TEST, got %s", data[0].Symbol)
	}
}
