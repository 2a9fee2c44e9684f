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

// ProgressObservation is a fire-and-forget snapshot emitted by the
// orchestrator and its phases. Fields is free-form, carrying whichever
// per-phase keys §4.4-§4.8 define for Phase; unused keys for a given
// phase are simply absent rather than zero-valued.
type ProgressObservation struct {
	Phase  SyncPhase
	Fields map[string]interface{}
}

// ProgressFunc receives observations. Implementations must not block or
// panic; the core treats it strictly as a side channel and never waits
// on it or inspects a return value.
type ProgressFunc func(ProgressObservation)

// emit is a nil-safe helper so phase code can call progress unconditionally.
func emit(progress ProgressFunc, phase SyncPhase, fields map[string]interface{}) {
	if progress == nil {
		return
	}
	progress(ProgressObservation{Phase: phase, Fields: fields})
}
