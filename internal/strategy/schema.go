package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type meanReversionSchema struct {
	TimeWindow int `json:"time_window" jsonschema:"title=Time Window,description=Rolling window of the mean reversion bands,minimum=1,default=20"`
}

type doubleRSISchema struct {
	RSIShortPeriod int `json:"rsi_short_period" jsonschema:"title=RSI Short Period,description=Period of the fast RSI,minimum=1,default=14"`
	RSILongPeriod  int `json:"rsi_long_period" jsonschema:"title=RSI Long Period,description=Period of the slow RSI,minimum=1,default=28"`
}

type arbitrageSchema struct {
	EntryThreshold float64 `json:"entry_threshold" jsonschema:"title=Entry Threshold,description=Spread z-score that opens a position,minimum=0,default=2"`
	ExitThreshold  float64 `json:"exit_threshold" jsonschema:"title=Exit Threshold,description=Spread z-score band that flattens the position,minimum=0,default=0"`
}

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// Schema returns the JSON schema of the parameters the strategy kind reads.
func Schema(kind types.StrategyType) (string, error) {
	switch kind {
	case types.StrategyTypeMeanReversion:
		return ToJSONSchema(meanReversionSchema{})
	case types.StrategyTypeDoubleRSI:
		return ToJSONSchema(doubleRSISchema{})
	case types.StrategyTypeArbitrage:
		return ToJSONSchema(arbitrageSchema{})
	}

	return "", errors.Newf(errors.ErrCodeInvalidStrategy, "unknown strategy %q", kind)
}
