package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestMean() {
	suite.Equal(2.5, Mean([]float64{1, 2, 3, 4}))
	suite.True(math.IsNaN(Mean(nil)))
}

func (suite *UtilsTestSuite) TestSampleStdDev() {
	// sample variance of 2,4,4,4,5,5,7,9 is 32/7
	suite.InDelta(math.Sqrt(32.0/7.0), SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	suite.Equal(0.0, SampleStdDev([]float64{3, 3, 3}))
	suite.True(math.IsNaN(SampleStdDev([]float64{1})))
}

func (suite *UtilsTestSuite) TestPctChange() {
	changes := PctChange([]float64{100, 110, 99})
	suite.Len(changes, 2)
	suite.InDelta(0.1, changes[0], 1e-12)
	suite.InDelta(-0.1, changes[1], 1e-12)
	suite.Empty(PctChange([]float64{1}))
}

func (suite *UtilsTestSuite) TestMinMax() {
	lo, hi := MinMax([]float64{1.5, -2, 7, 3})
	suite.Equal(-2.0, lo)
	suite.Equal(7.0, hi)

	lo, hi = MinMax(nil)
	suite.True(math.IsNaN(lo))
	suite.True(math.IsNaN(hi))
}

func (suite *UtilsTestSuite) TestIsFinite() {
	suite.True(IsFinite(1))
	suite.False(IsFinite(math.NaN()))
	suite.False(IsFinite(math.Inf(-1)))
}

func (suite *UtilsTestSuite) TestSampleCovariance() {
	suite.InDelta(2.0, SampleCovariance([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	suite.InDelta(-1.0, SampleCovariance([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	suite.True(math.IsNaN(SampleCovariance([]float64{1}, []float64{1})))
	suite.True(math.IsNaN(SampleCovariance([]float64{1, 2}, []float64{1})))
}
