// Package app wires the planning service together: configuration, logging,
// metric sinks, the event bus, the planner and its HTTP surface.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/asferrer/project-planner-app/api/planning"
	"github.com/asferrer/project-planner-app/config"
	"github.com/asferrer/project-planner-app/core/events"
	coremetrics "github.com/asferrer/project-planner-app/core/metrics"
	"github.com/asferrer/project-planner-app/core/plan"
	"github.com/asferrer/project-planner-app/infra/logger"
	"github.com/asferrer/project-planner-app/infra/metrics"
)

// Service hosts the HTTP planning API and its telemetry.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	bus     *events.Bus
	handler http.Handler
	counter *metrics.TaskCounter
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := events.NewBus()
	planner, err := plan.NewPlanner(cfg.Planner, logger.New("planner"), sink, bus)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	var counter *metrics.TaskCounter
	if cfg.Metrics.PrometheusEnabled {
		counter, err = metrics.NewTaskCounter(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("task counter: %w", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/api/plan", planning.NewPlanHandler(planner, logger.New("api")))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Service{cfg: cfg, log: logg, bus: bus, handler: mux, counter: counter}, nil
}

// Run serves until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		metrics.StartEventCollector(ctx, s.bus, s.counter)
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.handler}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("planning service listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Close releases service resources.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
