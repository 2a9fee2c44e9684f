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

package extractor

import (
	"errors"
	"fmt"
)

// ErrNoDateHeader is returned when the response carries no Date header (or
// whatever header/field the active Extractor treats as its time source).
var ErrNoDateHeader = errors.New("server response has no Date header")

// InvalidDateHeaderError wraps a Date header value that failed to parse.
type InvalidDateHeaderError struct {
	Raw   string
	Cause error
}

func (e *InvalidDateHeaderError) Error() string {
	return fmt.Sprintf("invalid Date header %q: %v", e.Raw, e.Cause)
}

func (e *InvalidDateHeaderError) Unwrap() error {
	return e.Cause
}
