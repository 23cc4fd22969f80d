package types

// Signal is the directional exposure a strategy wants for a bar.
type Signal int8

const (
	// SignalShort wants a short exposure.
	SignalShort Signal = -1
	// SignalFlat wants no exposure.
	SignalFlat Signal = 0
	// SignalLong wants a long exposure.
	SignalLong Signal = 1
)

func (s Signal) String() string {
	switch s {
	case SignalLong:
		return "long"
	case SignalShort:
		return "short"
	default:
		return "flat"
	}
}

// IsFlat reports whether the signal carries no exposure.
func (s Signal) IsFlat() bool {
	return s == SignalFlat
}

// Float returns the signal as a multiplier exponent (+1, 0, -1).
func (s Signal) Float() float64 {
	return float64(s)
}

// FlatSignals returns n flat signals.
func FlatSignals(n int) []Signal {
	return make([]Signal, n)
}
