// Package api exposes the simulation service over HTTP.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/simulation"
	"github.com/rxtech-lab/argo-backtest/internal/store"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// MaxRequestBodyBytes caps the size of a /simulate body.
const MaxRequestBodyBytes = 1 << 20

// Simulator is the part of simulation.Service the server needs.
type Simulator interface {
	NewRequest(algorithm types.StrategyType) simulation.Request
	Simulate(ctx context.Context, req simulation.Request, callbacks engine.LifecycleCallbacks) (*simulation.Response, error)
	Configuration() simulation.Configuration
	Statistics(ctx context.Context) ([]store.AlgorithmStatistics, error)
	Runs(ctx context.Context, filter store.ListRunsFilter) ([]store.RunRecord, error)
}

// Server serves the HTTP API.
type Server struct {
	simulator  Simulator
	logger     *logger.Logger
	httpServer *http.Server
	listener   net.Listener
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NewServer creates a server backed by simulator.
func NewServer(simulator Simulator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		simulator: simulator,
		logger:    log,
	}
}

// Handler returns the router with every route registered.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/simulate", s.handleSimulate).Methods("POST")
	router.HandleFunc("/configuration", s.handleConfiguration).Methods("GET")
	router.HandleFunc("/statistics", s.handleStatistics).Methods("GET")
	router.HandleFunc("/runs", s.handleRuns).Methods("GET")
	router.HandleFunc("/strategies/{name}/schema", s.handleStrategySchema).Methods("GET")

	return router
}

// Start listens on address and serves in the background.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", address)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("HTTP server listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for running ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// handleSimulate handles POST /simulate
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	// fields missing from the body keep their defaults
	req := s.simulator.NewRequest("")

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Code:     int(errors.ErrCodeInvalidParameter),
				Category: string(errors.CategoryInvalidParameters),
				Message:  "request body exceeds " + strconv.Itoa(MaxRequestBodyBytes) + " bytes",
			})

			return
		}

		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "malformed request body", err))

		return
	}

	response, err := s.simulator.Simulate(r.Context(), req, engine.LifecycleCallbacks{})
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleConfiguration handles GET /configuration
func (s *Server) handleConfiguration(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.simulator.Configuration())
}

// handleStatistics handles GET /statistics
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	statistics, err := s.simulator.Statistics(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, statistics)
}

// handleRuns handles GET /runs?algorithm=&limit=
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.ListRunsFilter{
		Algorithm: types.StrategyType(r.URL.Query().Get("algorithm")),
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			s.writeError(w, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid limit %q", limit))

			return
		}

		filter.Limit = n
	}

	runs, err := s.simulator.Runs(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, runs)
}

// handleStrategySchema handles GET /strategies/{name}/schema
func (s *Server) handleStrategySchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	schema, err := strategy.Schema(types.StrategyType(name))
	if err != nil {
		s.writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(schema))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	category := errors.CategoryOf(err)
	status := StatusFor(category)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.Error(err))
	}

	s.writeJSON(w, status, ErrorResponse{
		Code:     int(errors.GetCode(err)),
		Category: string(category),
		Message:  err.Error(),
	})
}

// StatusFor maps a failure category to an HTTP status code.
func StatusFor(category errors.Category) int {
	switch category {
	case errors.CategoryInvalidParameters:
		return http.StatusBadRequest
	case errors.CategoryInsufficientData:
		return http.StatusUnprocessableEntity
	case errors.CategoryDataUnavailable:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
