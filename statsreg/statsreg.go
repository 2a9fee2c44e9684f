/*
Copyright (c) Facebook, Inc. and its affiliates.

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

// Package statsreg exports per-server synchronization metrics over
// Prometheus. It is a host-side concern, external to the core: the
// syncengine itself only emits progress observations and a final
// SyncResult, never touches a metrics registry.
package statsreg

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mobster570/clocksync/syncengine"
)

// Registry holds the Prometheus collectors for one host process,
// labelled per server so a multi-server host reports independently.
type Registry struct {
	reg *prometheus.Registry

	offsetMS    *prometheus.GaugeVec
	verified    *prometheus.GaugeVec
	durationMS  *prometheus.GaugeVec
	syncTotal   *prometheus.CounterVec
	errorTotal  *prometheus.CounterVec
	phaseReached *prometheus.GaugeVec
}

// New constructs a Registry with a fresh Prometheus registry, so test
// processes and multiple Registry instances never collide on the global
// default registry.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		offsetMS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clocksync_offset_ms",
			Help: "Total estimated offset between the host clock and the server, in milliseconds.",
		}, []string{"server_id"}),
		verified: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clocksync_verified",
			Help: "1 if the last synchronization's verification phase passed, 0 otherwise.",
		}, []string{"server_id"}),
		durationMS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clocksync_sync_duration_ms",
			Help: "Wall-clock duration of the last synchronization, in milliseconds.",
		}, []string{"server_id"}),
		syncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clocksync_sync_total",
			Help: "Number of completed synchronizations.",
		}, []string{"server_id"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clocksync_sync_errors_total",
			Help: "Number of synchronizations that returned an error.",
		}, []string{"server_id"}),
		phaseReached: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clocksync_phase_reached",
			Help: "Ordinal of the furthest phase the last synchronization reached.",
		}, []string{"server_id"}),
	}
	r.reg.MustRegister(r.offsetMS, r.verified, r.durationMS, r.syncTotal, r.errorTotal, r.phaseReached)
	return r
}

// RecordResult updates the gauges and counters for a completed
// synchronization.
func (r *Registry) RecordResult(result syncengine.SyncResult) {
	labels := prometheus.Labels{"server_id": result.ServerID}
	r.offsetMS.With(labels).Set(result.TotalOffsetMS)
	r.durationMS.With(labels).Set(float64(result.Duration.Milliseconds()))
	r.phaseReached.With(labels).Set(float64(result.PhaseReached))
	r.syncTotal.With(labels).Inc()

	verifiedValue := 0.0
	if result.Verified {
		verifiedValue = 1.0
	}
	r.verified.With(labels).Set(verifiedValue)
}

// RecordError increments the error counter for a synchronization that
// failed before producing a SyncResult.
func (r *Registry) RecordError(serverID string) {
	r.errorTotal.With(prometheus.Labels{"server_id": serverID}).Inc()
}

// Handler returns an http.Handler serving this registry's metrics in the
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve starts an HTTP server exposing Handler at /metrics on port, and
// blocks until ctx is cancelled or the server fails.
func (r *Registry) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		return err
	}
}
