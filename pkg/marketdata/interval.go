package marketdata

import (
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Interval is the bar size of a series, such as "1d".
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalThreeMinutes   Interval = "3m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalOneHour        Interval = "1h"
	IntervalTwoHours       Interval = "2h"
	IntervalFourHours      Interval = "4h"
	IntervalSixHours       Interval = "6h"
	IntervalEightHours     Interval = "8h"
	IntervalTwelveHours    Interval = "12h"
	IntervalOneDay         Interval = "1d"
	IntervalThreeDays      Interval = "3d"
	IntervalOneWeek        Interval = "1w"
	IntervalOneMonth       Interval = "1M"
)

// SupportedIntervals lists every interval in ascending size.
var SupportedIntervals = []Interval{
	IntervalOneMinute,
	IntervalThreeMinutes,
	IntervalFiveMinutes,
	IntervalFifteenMinutes,
	IntervalThirtyMinutes,
	IntervalOneHour,
	IntervalTwoHours,
	IntervalFourHours,
	IntervalSixHours,
	IntervalEightHours,
	IntervalTwelveHours,
	IntervalOneDay,
	IntervalThreeDays,
	IntervalOneWeek,
	IntervalOneMonth,
}

// ParseInterval validates interval.
func ParseInterval(interval string) (Interval, error) {
	for _, i := range SupportedIntervals {
		if string(i) == interval {
			return i, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval %q", interval)
}

// Multiplier is the number of timespan units in one bar.
func (i Interval) Multiplier() int {
	switch i {
	case IntervalThreeMinutes, IntervalThreeDays:
		return 3
	case IntervalFiveMinutes:
		return 5
	case IntervalFifteenMinutes:
		return 15
	case IntervalThirtyMinutes:
		return 30
	case IntervalTwoHours:
		return 2
	case IntervalFourHours:
		return 4
	case IntervalSixHours:
		return 6
	case IntervalEightHours:
		return 8
	case IntervalTwelveHours:
		return 12
	default:
		return 1
	}
}

// PolygonTimespan is the polygon aggregate unit of the interval.
func (i Interval) PolygonTimespan() models.Timespan {
	switch i {
	case IntervalOneMinute, IntervalThreeMinutes, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes:
		return models.Minute
	case IntervalOneHour, IntervalTwoHours, IntervalFourHours, IntervalSixHours, IntervalEightHours, IntervalTwelveHours:
		return models.Hour
	case IntervalOneWeek:
		return models.Week
	case IntervalOneMonth:
		return models.Month
	default:
		return models.Day
	}
}

// BinanceInterval is the kline interval name. Binance uses the same notation.
func (i Interval) BinanceInterval() string {
	return string(i)
}

// Duration is the nominal length of one bar. A month counts as 30 days.
func (i Interval) Duration() time.Duration {
	unit := time.Minute

	switch i.PolygonTimespan() {
	case models.Hour:
		unit = time.Hour
	case models.Day:
		unit = 24 * time.Hour
	case models.Week:
		unit = 7 * 24 * time.Hour
	case models.Month:
		unit = 30 * 24 * time.Hour
	}

	return time.Duration(i.Multiplier()) * unit
}
