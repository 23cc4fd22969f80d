package types

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// TradingDaysPerYear is the number of trading days used to annualize rates.
const TradingDaysPerYear = 252

// PeriodUnit is the unit suffix of a Period.
type PeriodUnit string

const (
	PeriodUnitDay   PeriodUnit = "d"
	PeriodUnitWeek  PeriodUnit = "w"
	PeriodUnitMonth PeriodUnit = "mo"
	PeriodUnitYear  PeriodUnit = "y"
)

var periodPattern = regexp.MustCompile(`^(\d+)(d|w|mo|y)$`)

// Period is a lookback such as "12mo": a positive count of a unit.
type Period struct {
	Count int
	Unit  PeriodUnit
}

// ParsePeriod parses "<n>d", "<n>w", "<n>mo" or "<n>y".
func ParsePeriod(period string) (Period, error) {
	match := periodPattern.FindStringSubmatch(period)
	if match == nil {
		return Period{}, errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported period %q, expected <n>d, <n>w, <n>mo or <n>y", period)
	}

	count, err := strconv.Atoi(match[1])
	if err != nil || count <= 0 {
		return Period{}, errors.Newf(errors.ErrCodeInvalidPeriod, "period %q must start with a positive integer", period)
	}

	return Period{Count: count, Unit: PeriodUnit(match[2])}, nil
}

// TradingDays converts the period to trading days (d=1, w=7, mo=21, y=252 per unit).
func (p Period) TradingDays() int {
	switch p.Unit {
	case PeriodUnitDay:
		return p.Count
	case PeriodUnitWeek:
		return p.Count * 7
	case PeriodUnitMonth:
		return p.Count * 21
	case PeriodUnitYear:
		return p.Count * TradingDaysPerYear
	default:
		return 0
	}
}

// Start returns the calendar time one period before end.
func (p Period) Start(end time.Time) time.Time {
	switch p.Unit {
	case PeriodUnitDay:
		return end.AddDate(0, 0, -p.Count)
	case PeriodUnitWeek:
		return end.AddDate(0, 0, -7*p.Count)
	case PeriodUnitMonth:
		return end.AddDate(0, -p.Count, 0)
	case PeriodUnitYear:
		return end.AddDate(-p.Count, 0, 0)
	default:
		return end
	}
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.Count, p.Unit)
}
