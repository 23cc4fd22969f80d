// Package position turns strategy signals into held positions.
package position

import "github.com/rxtech-lab/argo-backtest/internal/types"

// Track shifts signals by one bar. A signal fired on bar i is held from bar i+1,
// so the first position is always flat. The input is not modified.
func Track(signals []types.Signal) []types.Signal {
	positions := types.FlatSignals(len(signals))

	for i := 1; i < len(signals); i++ {
		positions[i] = signals[i-1]
	}

	return positions
}
