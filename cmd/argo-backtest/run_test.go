package main

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RunCommandTestSuite struct {
	suite.Suite
}

func TestRunCommandSuite(t *testing.T) {
	suite.Run(t, new(RunCommandTestSuite))
}

func (suite *RunCommandTestSuite) TestParseParams() {
	params, err := parseParams(strategy.DefaultParams(), []string{"time_window=30", "entry_threshold = 1.5"})
	suite.Require().NoError(err)

	suite.Equal(30, params.TimeWindow)
	suite.Equal(1.5, params.EntryThreshold)
	suite.Equal(14, params.RSIShortPeriod)
}

func (suite *RunCommandTestSuite) TestParseParamsErrors() {
	for _, override := range []string{"time_window", "=3", "unknown_param=1", "time_window=abc"} {
		_, err := parseParams(strategy.DefaultParams(), []string{override})
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter), override)
	}
}

func (suite *RunCommandTestSuite) TestJoinStrategies() {
	suite.Equal("double_rsi, mean_reversion, arbitrage", joinStrategies())
}
