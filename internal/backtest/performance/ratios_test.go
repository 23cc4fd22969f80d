package performance

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RatiosTestSuite struct {
	suite.Suite
}

func TestRatiosSuite(t *testing.T) {
	suite.Run(t, new(RatiosTestSuite))
}

func (suite *RatiosTestSuite) TestExcessReturns() {
	excess := ExcessReturns([]float64{1, 1.1, 1.21}, 0.01)
	suite.Require().Len(excess, 2)
	suite.InDelta(0.09, excess[0], 1e-12)
	suite.InDelta(0.09, excess[1], 1e-12)

	suite.Empty(ExcessReturns([]float64{1}, 0.01))
}

func (suite *RatiosTestSuite) TestSharpe() {
	sharpe := Sharpe([]float64{0.01, 0.02, 0.03})
	suite.Require().True(sharpe.IsSome())
	suite.InDelta(2.0, sharpe.Unwrap(), 1e-9)
}

func (suite *RatiosTestSuite) TestSharpeUndefined() {
	suite.True(Sharpe([]float64{0.25, 0.25, 0.25}).IsNone(), "zero variance")
	suite.True(Sharpe([]float64{0, 0, 0}).IsNone(), "zero over zero")
	suite.True(Sharpe([]float64{0.01}).IsNone(), "single value")
	suite.True(Sharpe(nil).IsNone(), "empty")
}

func (suite *RatiosTestSuite) TestSortino() {
	sortino := Sortino([]float64{0.02, -0.01, 0.03, -0.03})
	suite.Require().True(sortino.IsSome())
	suite.InDelta(0.1767766952966369, sortino.Unwrap(), 1e-9)
}

func (suite *RatiosTestSuite) TestSortinoUndefined() {
	suite.True(Sortino([]float64{0.01, 0.02, 0.03}).IsNone(), "no downside")
	suite.True(Sortino([]float64{0.01, -0.02, 0.03}).IsNone(), "single downside value")
	suite.True(Sortino([]float64{0.5, -0.25, -0.25}).IsNone(), "flat downside")
}

func (suite *RatiosTestSuite) TestAlphaCancelsWhenMatchingBenchmark() {
	for _, rfr := range []float64{0, 0.05, 0.1, -0.01} {
		suite.Equal(0.0, Alpha(0.12, 0.12, 1.0, rfr), "rfr %f", rfr)
	}
}

func (suite *RatiosTestSuite) TestAlpha() {
	// (0.2 - 0.05) - 1.5 * (0.1 - 0.05)
	suite.InDelta(0.075, Alpha(0.2, 0.1, 1.5, 0.05), 1e-12)
	suite.InDelta(0.1, Alpha(0.2, 0.1, 1.0, 0.05), 1e-12)
}
