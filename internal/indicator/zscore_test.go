package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ZScoreTestSuite struct {
	suite.Suite
}

func TestZScoreSuite(t *testing.T) {
	suite.Run(t, new(ZScoreTestSuite))
}

func (suite *ZScoreTestSuite) TestZScore() {
	series, err := ZScore([]float64{1, 2, 3})
	suite.Require().NoError(err)

	// mean 2, sample std 1
	suite.InDelta(-1.0, series[0].Unwrap(), 1e-12)
	suite.InDelta(0.0, series[1].Unwrap(), 1e-12)
	suite.InDelta(1.0, series[2].Unwrap(), 1e-12)
}

func (suite *ZScoreTestSuite) TestZeroVariance() {
	_, err := ZScore([]float64{5, 5, 5, 5})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeZeroVariance))
}

func (suite *ZScoreTestSuite) TestTooFewValues() {
	_, err := ZScore([]float64{5})
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = ZScore(nil)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *ZScoreTestSuite) TestNoNaN() {
	series, err := ZScore([]float64{1, 4, 2, 8, 5})
	suite.Require().NoError(err)

	for _, v := range series {
		suite.False(math.IsNaN(v.Unwrap()))
	}
}
