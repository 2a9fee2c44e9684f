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
	"errors"
	"fmt"
)

// ErrCancelled is returned the moment a cancellation check observes a
// tripped context, from any phase.
var ErrCancelled = errors.New("syncengine: cancelled")

// ErrInvalidURL is returned when the target URL fails to parse before the
// HTTP client is constructed.
var ErrInvalidURL = errors.New("syncengine: invalid url")

// MaxRetriesExceededError is returned when a retry loop's RTT outlier
// filter rejects Retries consecutive probes without a single sample
// landing inside the latency profile's IQR band.
type MaxRetriesExceededError struct {
	Retries int
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("syncengine: max retries exceeded (%d)", e.Retries)
}

// newMaxRetriesExceeded builds the error for the fixed MAX_RETRIES budget.
func newMaxRetriesExceeded() error {
	return &MaxRetriesExceededError{Retries: MaxRetries}
}
