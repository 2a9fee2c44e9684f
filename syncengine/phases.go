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
	"math"

	"github.com/mobster570/clocksync/clock"
	"github.com/mobster570/clocksync/probe"
)

// checkCancelled turns a tripped context into ErrCancelled, the one error
// value every phase checks for at every suspension point.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

// probeUntilInBand waits until fraction, issues one probe, and repeats on
// RTT outliers up to MaxRetries. onSend, if non-nil, runs immediately after
// the wait and before the probe is sent, letting callers capture a
// send-time prediction fresh on every attempt. A genuine probe error
// (transport, missing/invalid date header) is surfaced unchanged; only an
// out-of-band RTT triggers a retry.
func probeUntilInBand(ctx context.Context, clk clock.Clock, pr probe.Probe, profile LatencyProfile, fraction float64, onSend func()) (probe.Result, error) {
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := checkCancelled(ctx); err != nil {
			return probe.Result{}, err
		}
		clk.WaitUntilFraction(fraction, MinIntervalSecs)
		if err := checkCancelled(ctx); err != nil {
			return probe.Result{}, err
		}
		if onSend != nil {
			onSend()
		}
		result, err := pr.Measure(ctx)
		if err != nil {
			return probe.Result{}, err
		}
		if profile.InRange(result.RTT.Seconds(), IQRMultiplier) {
			return result, nil
		}
	}
	return probe.Result{}, newMaxRetriesExceeded()
}

// runLatencyProfiling is Phase 1: DefaultProbeCount probes spaced by
// MinIntervalSecs, RTTs only.
func runLatencyProfiling(ctx context.Context, clk clock.Clock, pr probe.Probe, progress ProgressFunc) (LatencyProfile, error) {
	if err := checkCancelled(ctx); err != nil {
		return LatencyProfile{}, err
	}

	rtts := make([]float64, 0, DefaultProbeCount)
	for i := 0; i < DefaultProbeCount; i++ {
		if err := checkCancelled(ctx); err != nil {
			return LatencyProfile{}, err
		}
		if i > 0 {
			clk.Wait(MinIntervalSecs)
		}

		result, err := pr.Measure(ctx)
		if err != nil {
			return LatencyProfile{}, err
		}
		rtts = append(rtts, result.RTT.Seconds())

		running := computeLatencyProfile(rtts)
		emit(progress, PhaseLatencyProfiling, map[string]interface{}{
			"probe_index":    i,
			"total_probes":   DefaultProbeCount,
			"rtt_ms":         result.RTT.Seconds() * 1000.0,
			"running_median": running.Median * 1000.0,
		})
	}

	return computeLatencyProfile(rtts), nil
}

// runWholeSecondOffset is Phase 2.
func runWholeSecondOffset(ctx context.Context, clk clock.Clock, pr probe.Probe, profile LatencyProfile, progress ProgressFunc) (int64, error) {
	if err := checkCancelled(ctx); err != nil {
		return 0, err
	}

	halfRTT := profile.Median / 2
	fraction := clock.Modulo(1-halfRTT, 1)

	var predicted int64
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := checkCancelled(ctx); err != nil {
			return 0, err
		}
		clk.WaitUntilFraction(fraction, MinIntervalSecs)
		if err := checkCancelled(ctx); err != nil {
			return 0, err
		}
		predicted = int64(math.Floor(clk.SystemTimeSecs() + halfRTT))

		result, err := pr.Measure(ctx)
		if err != nil {
			return 0, err
		}
		if !profile.InRange(result.RTT.Seconds(), IQRMultiplier) {
			continue
		}

		offset := result.ServerSecond - predicted
		emit(progress, PhaseWholeSecondOffset, map[string]interface{}{
			"whole_second_offset": offset,
			"attempt":             attempt,
		})
		return offset, nil
	}

	return 0, newMaxRetriesExceeded()
}

// runBinarySearch is Phase 3.
func runBinarySearch(ctx context.Context, clk clock.Clock, pr probe.Probe, profile LatencyProfile, progress ProgressFunc) (float64, error) {
	if err := checkCancelled(ctx); err != nil {
		return 0, err
	}

	halfRTT := profile.Median / 2
	baselineFraction := clock.Modulo(1-halfRTT, 1)
	baseline, err := probeUntilInBand(ctx, clk, pr, profile, baselineFraction, nil)
	if err != nil {
		return 0, err
	}
	previousDate := baseline.ServerSecond

	left, right := 0.0, 1.0
	for iter := 0; right-left >= BinarySearchThreshold && iter < maxBinarySearchIterations; iter++ {
		if err := checkCancelled(ctx); err != nil {
			return 0, err
		}

		mid := (left + right) / 2
		wallStart := clk.MonotonicSecs()

		fraction := clock.Modulo(mid-halfRTT, 1)
		result, err := probeUntilInBand(ctx, clk, pr, profile, fraction, nil)
		if err != nil {
			return 0, err
		}
		currentDate := result.ServerSecond

		elapsedSeconds := int64(clk.MonotonicSecs() - wallStart)
		dateChange := currentDate - previousDate

		if dateChange == elapsedSeconds {
			left = mid
		} else {
			right = mid
		}

		emit(progress, PhaseBinarySearch, map[string]interface{}{
			"left_bound_ms":      left * 1000.0,
			"right_bound_ms":     right * 1000.0,
			"interval_width_ms":  (right - left) * 1000.0,
			"convergence_percent": (1 - (right - left)) * 100.0,
		})

		previousDate = currentDate
	}

	return 1.0 - left, nil
}

// runVerification is Phase 4.
func runVerification(ctx context.Context, clk clock.Clock, pr probe.Probe, profile LatencyProfile, wholeSecondOffset int64, subsecondOffset float64, progress ProgressFunc) (bool, error) {
	if err := checkCancelled(ctx); err != nil {
		return false, err
	}

	halfRTT := profile.Median / 2
	offset := float64(wholeSecondOffset) + subsecondOffset

	for _, shift := range []float64{-0.5, 0.5} {
		fraction := clock.Modulo(-offset-halfRTT+shift, 1)

		var predicted int64
		result, err := probeUntilInBand(ctx, clk, pr, profile, fraction, func() {
			predicted = int64(math.Floor(clk.SystemTimeSecs() + halfRTT + offset))
		})
		if err != nil {
			return false, err
		}

		matched := predicted == result.ServerSecond
		emit(progress, PhaseVerification, map[string]interface{}{
			"shift":     shift,
			"predicted": predicted,
			"actual":    result.ServerSecond,
			"matched":   matched,
		})
		if !matched {
			return false, nil
		}
	}

	return true, nil
}
