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

// Fixed tuning parameters. None of these are exposed for
// per-call override; config.EngineConfig mirrors their values for
// reporting but is never fed back into the engine.
const (
	MaxRetries        = 10
	MinIntervalSecs   = 0.5
	DefaultProbeCount = 10

	// BinarySearchThreshold is the convergence width (seconds) at which
	// Phase 3's bracket search stops.
	BinarySearchThreshold = 0.001

	// maxBinarySearchIterations bounds the bracket loop defensively; the
	// threshold above always converges within ~10 halvings of [0,1], so
	// this only guards against the degenerate case noted in the design
	// notes where the interval fails to shrink.
	maxBinarySearchIterations = 20
)
