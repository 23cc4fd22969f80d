package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	apperrors "github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator *mockPolygonIterator
	params   *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.params = params

	return m.iterator
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++

		return true
	}

	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	if m.index > 0 && m.index <= len(m.aggs) {
		return m.aggs[m.index-1]
	}

	return models.Agg{}
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

type PolygonProviderTestSuite struct {
	suite.Suite
	now time.Time
}

func TestPolygonProviderSuite(t *testing.T) {
	suite.Run(t, new(PolygonProviderTestSuite))
}

func (suite *PolygonProviderTestSuite) SetupTest() {
	suite.now = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
}

func (suite *PolygonProviderTestSuite) provider(client PolygonAPIClient) *PolygonProvider {
	return newPolygonProviderWithClient(client, func() time.Time { return suite.now }, logger.NewNopLogger())
}

func agg(day int, closePrice float64) models.Agg {
	return models.Agg{
		Timestamp: models.Millis(time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)),
		Open:      closePrice - 1,
		High:      closePrice + 1,
		Low:       closePrice - 2,
		Close:     closePrice,
		Volume:    1000,
	}
}

func (suite *PolygonProviderTestSuite) TestNewPolygonProvider() {
	provider, err := NewPolygonProvider("test-api-key", nil)
	suite.NoError(err)
	suite.NotNil(provider)

	_, err = NewPolygonProvider("", nil)
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeInvalidConfiguration))
}

func (suite *PolygonProviderTestSuite) TestFetch() {
	client := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{aggs: []models.Agg{agg(4, 190), agg(3, 189), agg(5, 191)}},
	}

	series, err := suite.provider(client).Fetch(context.Background(), "AAPL", "1mo", "1h")
	suite.Require().NoError(err)

	suite.Equal("AAPL", series.Symbol)
	suite.Equal([]float64{189, 190, 191}, series.Closes())
	suite.Equal(188.0, series.Bars[0].Open)
	suite.Equal("AAPL", series.Bars[0].Symbol)
	suite.NoError(series.Validate())

	suite.Require().NotNil(client.params)
	suite.Equal("AAPL", client.params.Ticker)
	suite.Equal(1, client.params.Multiplier)
	suite.Equal(models.Hour, client.params.Timespan)
	suite.Equal(time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), time.Time(client.params.From))
	suite.Equal(suite.now, time.Time(client.params.To))
}

func (suite *PolygonProviderTestSuite) TestFetchNoBars() {
	client := &mockPolygonAPIClient{iterator: &mockPolygonIterator{}}

	_, err := suite.provider(client).Fetch(context.Background(), "AAPL", "12mo", "1d")
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeDataNotFound))
	suite.Equal(apperrors.CategoryDataUnavailable, apperrors.CategoryOf(err))
}

func (suite *PolygonProviderTestSuite) TestFetchIteratorError() {
	client := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{aggs: []models.Agg{agg(3, 1)}, err: errors.New("rate limited")},
	}

	_, err := suite.provider(client).Fetch(context.Background(), "AAPL", "12mo", "1d")
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "rate limited")
}

func (suite *PolygonProviderTestSuite) TestFetchInvalidRequest() {
	provider := suite.provider(&mockPolygonAPIClient{iterator: &mockPolygonIterator{}})

	_, err := provider.Fetch(context.Background(), "", "12mo", "1d")
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeMissingParameter))

	_, err = provider.Fetch(context.Background(), "AAPL", "12x", "1d")
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeInvalidPeriod))

	_, err = provider.Fetch(context.Background(), "AAPL", "12mo", "7h")
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeInvalidInterval))
}
