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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModulo(t *testing.T) {
	require.InDelta(t, 0.5, Modulo(0.5, 1.0), 1e-9)
	require.InDelta(t, 0.5, Modulo(-0.5, 1.0), 1e-9, "negative dividend wraps into [0,1)")
	require.InDelta(t, 0.3, Modulo(2.3, 1.0), 1e-9, "values above the modulus wrap down")
	require.InDelta(t, 0.0, Modulo(1.0, 1.0), 1e-9)
	require.InDelta(t, 0.9, Modulo(-2.1, 1.0), 1e-9)
}

func TestRealClockSystemTimeSecsIsCurrentEpoch(t *testing.T) {
	c := NewRealClock()
	now := c.SystemTimeSecs()
	// Any real wall clock reading must exceed 2023-11-14T22:13:20Z in unix seconds.
	require.Greater(t, now, 1_700_000_000.0)
}

func TestRealClockMonotonicIsNonDecreasing(t *testing.T) {
	c := NewRealClock()
	a := c.MonotonicSecs()
	time.Sleep(time.Millisecond)
	b := c.MonotonicSecs()
	require.GreaterOrEqual(t, b, a)
}

func TestWaitZeroOrNegativeReturnsImmediately(t *testing.T) {
	start := time.Now()
	Wait(0)
	Wait(-1)
	require.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWaitSmallDurationIsApproximatelyAccurate(t *testing.T) {
	start := time.Now()
	Wait(0.01)
	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	require.LessOrEqual(t, elapsed, 60*time.Millisecond)
}

func TestWaitUntilFractionHitsTargetFraction(t *testing.T) {
	c := NewSimulatedClock(10.25) // wall=10.25, fraction=0.25
	before := c.SystemTimeSecs()
	c.WaitUntilFraction(0.75, 0.1)
	after := c.SystemTimeSecs()

	require.GreaterOrEqual(t, after-before, 0.1, "must not fire sooner than minWait")
	frac := after - math.Floor(after)
	require.InDelta(t, 0.75, frac, 1e-9)
}

func TestWaitUntilFractionWrapsWhenNotBeforeOvershootsTarget(t *testing.T) {
	// now=10.90, fraction=0.10, minWait=0.5 => notBefore=11.40, naive target
	// floor(11.40)+0.10=11.10 is before notBefore, so target must roll to 12.10.
	c := NewSimulatedClock(10.90)
	before := c.SystemTimeSecs()
	c.WaitUntilFraction(0.10, 0.5)
	after := c.SystemTimeSecs()

	require.InDelta(t, 12.10, after, 1e-9)
	require.GreaterOrEqual(t, after-before, 0.5)
}

func TestWaitUntilFractionHandlesMinWaitAboveOneSecond(t *testing.T) {
	// Exercises the mod-1 wrap required when half_rtt > 1s.
	c := NewSimulatedClock(0.0)
	c.WaitUntilFraction(Modulo(1.0-1.25, 1.0), 2.5)
	after := c.SystemTimeSecs()
	frac := after - math.Floor(after)
	require.InDelta(t, 0.75, frac, 1e-9)
	require.GreaterOrEqual(t, after, 2.5)
}

func TestSimulatedClockWaitAdvancesBothClocksTogether(t *testing.T) {
	c := NewSimulatedClock(100.0)
	c.Wait(0.25)
	require.InDelta(t, 100.25, c.SystemTimeSecs(), 1e-9)
	require.InDelta(t, 0.25, c.MonotonicSecs(), 1e-9)
}

func TestSimulatedClockWaitIgnoresNonPositive(t *testing.T) {
	c := NewSimulatedClock(5.0)
	c.Wait(0)
	c.Wait(-3)
	require.InDelta(t, 5.0, c.SystemTimeSecs(), 1e-9)
	require.InDelta(t, 0.0, c.MonotonicSecs(), 1e-9)
}
