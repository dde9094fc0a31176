// ABOUTME: HTTP JSON API over the hydration service.
// ABOUTME: gorilla/mux routes, request logging, panic recovery and prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/harperreed/hydration/internal/hydration"
	"github.com/harperreed/hydration/internal/metrics"
	"github.com/harperreed/hydration/internal/weather"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	service        *hydration.Service
	weatherClient  *weather.Client
	metricsManager *metrics.Manager
	promGatherer   prometheus.Gatherer
}

type Params struct {
	Service  *hydration.Service
	Weather  *weather.Client
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
}

func NewServer(params Params) *Server {
	return &Server{
		service:        params.Service,
		weatherClient:  params.Weather,
		metricsManager: params.Metrics,
		promGatherer:   params.Gatherer,
	}
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", s.handlePing).Methods("GET")
	api.HandleFunc("/users", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/plan", s.handlePlan).Methods("POST")
	api.HandleFunc("/logs", s.handleListLogs).Methods("GET")
	api.HandleFunc("/logs/update", s.handleUpdateLog).Methods("POST")
	api.HandleFunc("/daily", s.handleGetDaily).Methods("GET")
	api.HandleFunc("/daily", s.handleUpdateDaily).Methods("POST")
	api.HandleFunc("/daily/urine", s.handleLogUrine).Methods("POST")
	api.HandleFunc("/daily/water", s.handleLogWater).Methods("POST")
	api.HandleFunc("/daily/water/reset", s.handleResetWater).Methods("POST")
	api.HandleFunc("/goal", s.handleGoal).Methods("GET")
	api.HandleFunc("/weather", s.handleWeather).Methods("GET")

	if s.promGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.promGatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.Use(PanicRecovery(s.metricsManager))
	r.Use(LogRequest())
	r.Use(RequestMetrics(s.metricsManager))

	return r
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof(" > server listening on: [%s]", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Debug("graceful shutdown initiated ...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("server shut down")
		return nil
	})

	return g.Wait()
}
