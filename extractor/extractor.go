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

// Package extractor pulls a server's whole-second Unix timestamp out of an
// HTTP response. It exists so the synchronization engine never hard-codes
// "parse the Date header" — an alternate source (a different header, an
// auxiliary timing endpoint) can be substituted without touching the
// protocol in package syncengine.
package extractor

import (
	"net/http"
)

// Extractor turns an HTTP response into the server's whole-second Unix
// timestamp, or fails with ErrNoDateHeader / *InvalidDateHeaderError. Implementations must be safe for concurrent use; the engine calls
// Extract from a single goroutine per synchronization, but one Extractor is
// commonly shared across concurrent synchronizations against different
// servers.
type Extractor interface {
	// Name identifies the strategy, surfaced in progress/log output.
	Name() string
	// Extract returns the server's Unix timestamp in whole seconds.
	Extract(resp *http.Response) (int64, error)
}

// DateHeaderExtractor is the default Extractor: it parses the standard
// HTTP Date response header (RFC 1123/2822 date-time, e.g.
// "Wed, 21 Oct 2015 07:28:00 GMT").
type DateHeaderExtractor struct{}

// Name returns "date-header".
func (DateHeaderExtractor) Name() string {
	return "date-header"
}

// Extract parses resp's Date header.
func (DateHeaderExtractor) Extract(resp *http.Response) (int64, error) {
	raw := resp.Header.Get("Date")
	if raw == "" {
		return 0, ErrNoDateHeader
	}
	t, err := http.ParseTime(raw)
	if err != nil {
		return 0, &InvalidDateHeaderError{Raw: raw, Cause: err}
	}
	return t.Unix(), nil
}

var _ Extractor = DateHeaderExtractor{}
