package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-backtest/pkg/marketdata Provider,BetaProvider
//go:generate mockgen -destination=./mock_store.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/store RunStore
//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/backtest/engine Engine
//go:generate mockgen -destination=./mock_simulator.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/api Simulator
