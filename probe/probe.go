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

// Package probe issues the single HTTP exchange the synchronization engine
// is built out of: send one HEAD request, measure its round-trip time on
// the monotonic clock, and hand the response to a Extractor to recover the
// server's whole-second clock reading.
package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/mobster570/clocksync/clock"
	"github.com/mobster570/clocksync/extractor"
)

// DefaultTimeout is the fixed per-probe HTTP timeout.
const DefaultTimeout = 10 * time.Second

// Result is a single probe's outcome: the server's whole-second clock
// reading and the measured round-trip time.
type Result struct {
	ServerSecond int64
	RTT          time.Duration
}

// Probe is the capability the protocol depends on for network I/O. RealProbe
// backs production use; SimulatedProbe drives deterministic tests.
type Probe interface {
	// Measure sends one request and returns the server's whole-second
	// timestamp plus the measured RTT, or a TransportError /
	// extractor error on failure.
	Measure(ctx context.Context) (Result, error)
}

// RealProbe wraps an *http.Client bound to one target URL. The client is
// expected to carry DefaultTimeout (see NewHTTPClient), constructed once per
// synchronization and shared read-only across phases.
type RealProbe struct {
	client    *http.Client
	url       string
	extractor extractor.Extractor
	monotonic func() float64
}

// NewRealProbe builds a RealProbe targeting url, decoding responses with the
// given Extractor. monotonic is injected (rather than reading clock.RealClock
// directly) so RTT measurement can share a single Clock instance with the
// rest of a synchronization.
func NewRealProbe(client *http.Client, url string, ex extractor.Extractor, c clock.Clock) *RealProbe {
	return &RealProbe{client: client, url: url, extractor: ex, monotonic: c.MonotonicSecs}
}

// NewHTTPClient returns an *http.Client configured with the fixed
// per-probe timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// Measure sends one HEAD request to p's URL.
func (p *RealProbe) Measure(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return Result{}, &TransportError{Cause: err}
	}

	start := p.monotonic()
	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, &TransportError{Cause: err}
	}
	defer resp.Body.Close()
	rtt := p.monotonic() - start

	serverSecond, err := p.extractor.Extract(resp)
	if err != nil {
		return Result{}, err
	}

	return Result{ServerSecond: serverSecond, RTT: time.Duration(rtt * float64(time.Second))}, nil
}

var _ Probe = (*RealProbe)(nil)
