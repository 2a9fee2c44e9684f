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

import "time"

// SyncResult is the outcome of one synchronization, emitted exactly once
// per completed run.
type SyncResult struct {
	ServerID string

	// WholeSecondOffset is server-minus-client, in signed whole seconds.
	WholeSecondOffset int64
	// SubsecondOffset is in [0, 1) seconds.
	SubsecondOffset float64
	// TotalOffsetMS is (WholeSecondOffset + SubsecondOffset) * 1000.
	TotalOffsetMS float64

	LatencyProfile LatencyProfile
	Verified       bool

	// SyncedAt is the wall-clock instant the orchestrator completed.
	SyncedAt time.Time
	// Duration is the total wall-clock time the run took.
	Duration time.Duration

	PhaseReached SyncPhase
}

// newSyncResult assembles a SyncResult and fixes up the total offset and
// phase-reached invariants in one place, so they can never drift apart:
// phase_reached is 4 iff verified is true, otherwise 3.
func newSyncResult(serverID string, wholeSecond int64, subsecond float64, profile LatencyProfile, verified bool, syncedAt time.Time, duration time.Duration) SyncResult {
	totalOffset := float64(wholeSecond) + subsecond
	phase := PhaseVerification
	if verified {
		phase = PhaseComplete
	}
	return SyncResult{
		ServerID:          serverID,
		WholeSecondOffset: wholeSecond,
		SubsecondOffset:   subsecond,
		TotalOffsetMS:     totalOffset * 1000.0,
		LatencyProfile:    profile,
		Verified:          verified,
		SyncedAt:          syncedAt,
		Duration:          duration,
		PhaseReached:      phase,
	}
}
