package performance

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PeriodTestSuite struct {
	suite.Suite
}

func TestPeriodSuite(t *testing.T) {
	suite.Run(t, new(PeriodTestSuite))
}

func (suite *PeriodTestSuite) TestParsePeriod() {
	tests := []struct {
		period string
		days   int
	}{
		{"1d", 1},
		{"5d", 5},
		{"2w", 14},
		{"1mo", 21},
		{"12mo", 252},
		{"1y", 252},
		{"2y", 504},
	}

	for _, tc := range tests {
		suite.Run(tc.period, func() {
			days, err := ParsePeriod(tc.period)
			suite.Require().NoError(err)
			suite.Equal(tc.days, days)
		})
	}
}

func (suite *PeriodTestSuite) TestParsePeriodInvalid() {
	for _, period := range []string{"", "12", "mo", "12m", "0d", "-1d", "1.5y", "ytd", "12MO"} {
		suite.Run(period, func() {
			_, err := ParsePeriod(period)
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
			suite.Equal(errors.CategoryInvalidParameters, errors.CategoryOf(err))
		})
	}
}

func (suite *PeriodTestSuite) TestHoldingPeriodRate() {
	suite.InDelta(0.05, HoldingPeriodRate(0.05, 252), 1e-12)
	suite.InDelta(0.1025, HoldingPeriodRate(0.05, 504), 1e-12)
	suite.Equal(0.0, HoldingPeriodRate(0.05, 0))
	suite.InDelta(math.Sqrt(1.05)-1, HoldingPeriodRate(0.05, 126), 1e-12)
}

func (suite *PeriodTestSuite) TestPerBarRateCompoundsBack() {
	holding := HoldingPeriodRate(DefaultRiskFreeRate, 252)
	perBar := PerBarRate(holding, 250)

	suite.InDelta(1+holding, math.Pow(1+perBar, 250), 1e-12)
	suite.InDelta(holding, PerBarRate(holding, 1), 1e-15)
	suite.Equal(0.0, PerBarRate(holding, 0))
}
