package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBands() {
	bb, err := NewBollingerBands(20, 2)
	suite.Require().NoError(err)
	suite.Equal(20, bb.period)
	suite.Equal(2.0, bb.stdDev)
	suite.Equal(types.IndicatorTypeBollingerBands, bb.Name())
	suite.Equal(19, bb.WarmUp())
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBandsInvalid() {
	_, err := NewBollingerBands(0, 2)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	_, err = NewBollingerBands(-5, 2)
	suite.Error(err)

	_, err = NewBollingerBands(20, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = NewBollingerBands(20, math.NaN())
	suite.Error(err)
}

func (suite *BollingerBandsTestSuite) TestCalculateBands() {
	bb, err := NewBollingerBands(4, 2)
	suite.Require().NoError(err)

	closes := []float64{1, 2, 3, 4, 5, 6}
	bands := bb.CalculateBands(closes)

	suite.Len(bands.Middle, len(closes))

	for i := 0; i < 3; i++ {
		suite.True(bands.Middle[i].IsNone(), "bar %d should be in warm-up", i)
		suite.True(bands.Upper[i].IsNone())
	}

	// window 1,2,3,4: mean 2.5, sample std sqrt(5/3)
	std := math.Sqrt(5.0 / 3.0)
	suite.InDelta(2.5, bands.Middle[3].Unwrap(), 1e-12)
	suite.InDelta(std, bands.StdDev[3].Unwrap(), 1e-12)
	suite.InDelta(2.5+2*std, bands.Upper[3].Unwrap(), 1e-12)
	suite.InDelta(2.5-2*std, bands.Lower[3].Unwrap(), 1e-12)
	suite.InDelta(4.5, bands.Middle[5].Unwrap(), 1e-12)
}

func (suite *BollingerBandsTestSuite) TestFlatPricesCollapseBands() {
	bb, err := NewBollingerBands(5, 2)
	suite.Require().NoError(err)

	closes := []float64{100, 100, 100, 100, 100, 100, 100}
	bands := bb.CalculateBands(closes)

	for i := 4; i < len(closes); i++ {
		suite.Equal(100.0, bands.Upper[i].Unwrap())
		suite.Equal(100.0, bands.Lower[i].Unwrap())
		suite.Equal(0.0, bands.StdDev[i].Unwrap())
	}
}

func (suite *BollingerBandsTestSuite) TestSingleBarWindowHasNoBands() {
	bb, err := NewBollingerBands(1, 2)
	suite.Require().NoError(err)

	bands := bb.CalculateBands([]float64{10, 11})
	suite.Equal(10.0, bands.Middle[0].Unwrap())
	suite.True(bands.Upper[0].IsNone())
	suite.True(bands.Lower[1].IsNone())
}

func (suite *BollingerBandsTestSuite) TestInputNotModified() {
	bb, err := NewBollingerBands(2, 2)
	suite.Require().NoError(err)

	closes := []float64{3, 1, 2}
	_ = bb.Calculate(closes)
	suite.Equal([]float64{3, 1, 2}, closes)
}

func (suite *BollingerBandsTestSuite) TestMiddleBandIsMovingAverage() {
	bb, err := NewBollingerBands(3, 2)
	suite.Require().NoError(err)

	ma, err := NewMA(3)
	suite.Require().NoError(err)

	closes := []float64{5, 7, 6, 9, 12, 8}
	suite.Equal(ma.Calculate(closes), bb.Calculate(closes))
	suite.Equal(ma.WarmUp(), bb.WarmUp())
}
