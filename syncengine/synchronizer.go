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

package syncengine

import (
	"context"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mobster570/clocksync/clock"
	"github.com/mobster570/clocksync/extractor"
	"github.com/mobster570/clocksync/probe"
)

// Synchronize is the single public entry point: run Phases 1-4 against
// url in order, threading cancellation and progress throughout, and
// return the aggregate SyncResult. On any phase failure the error is
// propagated unchanged; there is no phase-level retry.
func Synchronize(ctx context.Context, serverID, rawURL string, ex extractor.Extractor, clk clock.Clock, progress ProgressFunc) (SyncResult, error) {
	start := clk.MonotonicSecs()

	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return SyncResult{}, ErrInvalidURL
	}

	pr := probe.NewRealProbe(probe.NewHTTPClient(), rawURL, ex, clk)
	return synchronize(ctx, serverID, pr, clk, progress, start)
}

// synchronize drives Phases 1-4 against an already-constructed Probe, so
// tests can substitute probe.SimulatedProbe without touching URL parsing
// or HTTP client construction.
func synchronize(ctx context.Context, serverID string, pr probe.Probe, clk clock.Clock, progress ProgressFunc, startMonotonic float64) (SyncResult, error) {
	log := logrus.WithField("server_id", serverID)

	if err := checkCancelled(ctx); err != nil {
		log.Debug("cancelled before latency profiling")
		return SyncResult{}, err
	}
	profile, err := runLatencyProfiling(ctx, clk, pr, progress)
	if err != nil {
		log.WithError(err).Debug("latency profiling failed")
		return SyncResult{}, err
	}

	if err := checkCancelled(ctx); err != nil {
		return SyncResult{}, err
	}
	wholeSecondOffset, err := runWholeSecondOffset(ctx, clk, pr, profile, progress)
	if err != nil {
		log.WithError(err).Debug("whole-second offset phase failed")
		return SyncResult{}, err
	}

	if err := checkCancelled(ctx); err != nil {
		return SyncResult{}, err
	}
	subsecondOffset, err := runBinarySearch(ctx, clk, pr, profile, progress)
	if err != nil {
		log.WithError(err).Debug("binary search phase failed")
		return SyncResult{}, err
	}

	if err := checkCancelled(ctx); err != nil {
		return SyncResult{}, err
	}
	verified, err := runVerification(ctx, clk, pr, profile, wholeSecondOffset, subsecondOffset, progress)
	if err != nil {
		log.WithError(err).Debug("verification phase failed")
		return SyncResult{}, err
	}

	duration := time.Duration((clk.MonotonicSecs() - startMonotonic) * float64(time.Second))
	syncedAt := time.Unix(0, int64(clk.SystemTimeSecs()*float64(time.Second)))

	result := newSyncResult(serverID, wholeSecondOffset, subsecondOffset, profile, verified, syncedAt, duration)

	emit(progress, PhaseComplete, map[string]interface{}{
		"whole_second_offset": wholeSecondOffset,
		"subsecond_offset":    subsecondOffset,
		"total_offset_ms":     result.TotalOffsetMS,
		"verified":            verified,
		"duration_ms":         duration.Seconds() * 1000.0,
	})

	return result, nil
}
