/*
Copyright 2025 The Windrow Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/shared/util"
)

// DefaultPort is the port the metrics server listens on unless overridden
// with WithPort.
const DefaultPort = 2470

// metricsServer runs an HTTP server to:
// 1. Expose metrics;
// 2. Serve an endpoint to execute health checks
type metricsServer struct {
	port int
	// Functions that health check executes
	healthCheckExecutors []func() error
}

type Option func(*metricsServer)

// WithPort overrides the listen port.
func WithPort(port int) Option {
	return func(m *metricsServer) {
		m.port = port
	}
}

// WithHealthCheckExecutor appends a health check executor
func WithHealthCheckExecutor(f func() error) Option {
	return func(m *metricsServer) {
		m.healthCheckExecutors = append(m.healthCheckExecutors, f)
	}
}

// NewMetricsOptions builds a metrics option list from the given health
// checkers, each wrapped with a bounded timeout.
func NewMetricsOptions(ctx context.Context, healthCheckers ...HealthChecker) []Option {
	var metricsOpts []Option
	if util.LookupEnvStringOr("WINDROW_HEALTH_CHECK_DISABLED", "false") != "true" {
		for _, hc := range healthCheckers {
			hc := hc
			metricsOpts = append(metricsOpts, WithHealthCheckExecutor(func() error {
				cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
				defer cancel()
				return hc.IsHealthy(cctx)
			}))
		}
	}
	return metricsOpts
}

// NewMetricsServer returns a Prometheus metrics server instance, which can be
// used to start an HTTP service to expose Prometheus metrics.
func NewMetricsServer(opts ...Option) *metricsServer {
	m := new(metricsServer)
	m.port = DefaultPort
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Start function starts the HTTP service to expose metrics, it returns a shutdown function and an error if any
func (ms *metricsServer) Start(ctx context.Context) (func(ctx context.Context) error, error) {
	log := logging.FromContext(ctx)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		for _, ex := range ms.healthCheckExecutors {
			if err := ex(); err != nil {
				log.Errorw("Failed to execute health check", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	pprofEnabled := util.LookupEnvBoolOr("WINDROW_DEBUG", false) || util.LookupEnvBoolOr("WINDROW_PPROF", false)
	if pprofEnabled {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		log.Info("Not enabling pprof debug endpoints")
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", ms.port),
		Handler: mux,
	}

	go func() {
		log.Info("Starting metrics HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("Failed to listen-and-serve on HTTP", zap.Error(err))
		}
		log.Info("Metrics server shutdown")
	}()
	return httpServer.Shutdown, nil
}
