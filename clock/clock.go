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

package clock

import (
	"math"
	"time"
)

// spinTail is how much of a requested wait is left to a busy-spin against
// the monotonic clock, after the coarse sleep. time.Sleep jitters by tens
// of milliseconds on a loaded host; spinning the last slice is what gets
// Wait under a millisecond of error.
const spinTail = 100 * time.Millisecond

// Clock is the capability the synchronization engine depends on instead of
// calling time.Now/time.Sleep directly. RealClock backs production use;
// SimulatedClock backs tests.
type Clock interface {
	// SystemTimeSecs returns the current wall-clock time as fractional
	// seconds since the Unix epoch.
	SystemTimeSecs() float64
	// MonotonicSecs returns a monotonic, non-decreasing seconds counter
	// suitable for measuring elapsed intervals.
	MonotonicSecs() float64
	// Wait blocks for approximately the given duration. Zero or negative
	// returns immediately.
	Wait(seconds float64)
	// WaitUntilFraction blocks until the wall clock's fractional second
	// next equals fraction, but never sooner than minWait seconds from now.
	WaitUntilFraction(fraction float64, minWait float64)
}

// Modulo is floating-point modulo that always returns a value in [0, m),
// unlike Go's %, which preserves the sign of the dividend. The protocol
// relies on wrapping fractional targets (e.g. 1-half_rtt when half_rtt>1)
// into [0,1) before scheduling a wait.
func Modulo(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}

// RealClock is the production Clock, backed by the OS wall and monotonic
// clocks.
type RealClock struct{}

// NewRealClock returns a RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// SystemTimeSecs returns time.Now as fractional Unix seconds.
func (c *RealClock) SystemTimeSecs() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// monotonicEpoch anchors MonotonicSecs to process start. time.Now carries a
// monotonic reading on every platform Go supports; time.Since reads it
// transparently without ever touching the wall-clock component.
var monotonicEpoch = time.Now()

// MonotonicSecs returns a monotonic, non-decreasing seconds counter.
func (c *RealClock) MonotonicSecs() float64 {
	return time.Since(monotonicEpoch).Seconds()
}

// Wait blocks the calling goroutine for approximately seconds, using a
// coarse sleep for the bulk of the duration and a tight spin for the final
// spinTail, so that post-wait error stays under a millisecond on a quiet
// system.
func (c *RealClock) Wait(seconds float64) {
	Wait(seconds)
}

// WaitUntilFraction blocks until the wall clock's fractional second next
// equals fraction, no sooner than minWait seconds from the call instant.
func (c *RealClock) WaitUntilFraction(fraction float64, minWait float64) {
	WaitUntilFraction(c, fraction, minWait)
}

// Wait is the free function two-stage sleep-then-spin strategy, usable
// without a Clock instance where only the wait itself is needed (e.g. the
// MIN_INTERVAL_SECS pacing between probes that don't target a fraction).
func Wait(seconds float64) {
	if seconds <= 0 {
		return
	}
	start := time.Now()
	target := time.Duration(seconds * float64(time.Second))

	if target > spinTail {
		time.Sleep(target - spinTail)
	}
	for time.Since(start) < target {
		// busy-spin; runtime.Gosched would reintroduce scheduler jitter
		// of the same order we're trying to avoid.
	}
}

// WaitUntilFraction implements the scheduling rule:
//
//	now = SystemTimeSecs()
//	notBefore = now + minWait
//	target = floor(notBefore) + fraction
//	if notBefore > target { target += 1 }
//	wait(target - now)
func WaitUntilFraction(c Clock, fraction float64, minWait float64) {
	now := c.SystemTimeSecs()
	notBefore := now + minWait
	target := math.Floor(notBefore) + fraction
	if notBefore > target {
		target++
	}
	c.Wait(target - now)
}
