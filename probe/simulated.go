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

package probe

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/mobster570/clocksync/clock"
)

// SimulatedProbe is a deterministic test double. It models a server whose
// clock is server_offset seconds away from the client's, and whose reply
// timestamp is floor(send_time + rtt/2 + server_offset) — the same formula
// a deterministic fixture server is defined to behave as.
//
// Each call to Measure consumes one RTT off an explicit queue (looping the
// last entry once the queue is drained), and advances the shared
// SimulatedClock by that RTT so that phases scheduling back-to-back probes
// observe a consistent, steadily advancing wall clock.
type SimulatedProbe struct {
	mu           sync.Mutex
	clock        *clock.SimulatedClock
	serverOffset float64
	rtts         []time.Duration
	calls        int
}

// NewSimulatedProbe returns a SimulatedProbe against c, with the server's
// clock serverOffsetSecs away from the client's, replaying rtts in order.
func NewSimulatedProbe(c *clock.SimulatedClock, serverOffsetSecs float64, rtts ...time.Duration) *SimulatedProbe {
	return &SimulatedProbe{clock: c, serverOffset: serverOffsetSecs, rtts: rtts}
}

// Measure implements Probe.
func (p *SimulatedProbe) Measure(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	idx := p.calls
	if idx >= len(p.rtts) {
		idx = len(p.rtts) - 1
	}
	rtt := p.rtts[idx]
	p.calls++
	p.mu.Unlock()

	sendWall := p.clock.SystemTimeSecs()
	p.clock.Wait(rtt.Seconds())

	serverSecond := int64(math.Floor(sendWall + rtt.Seconds()/2 + p.serverOffset))
	return Result{ServerSecond: serverSecond, RTT: rtt}, nil
}

// CallCount returns how many times Measure has been invoked so far.
func (p *SimulatedProbe) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var _ Probe = (*SimulatedProbe)(nil)
