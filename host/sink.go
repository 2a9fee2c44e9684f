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

package host

import (
	log "github.com/sirupsen/logrus"

	"github.com/mobster570/clocksync/syncengine"
)

// ProgressSink is the desktop/IPC glue contract: something that delivers
// progress observations onward to a UI. The core only ever
// calls a syncengine.ProgressFunc; Sink additionally takes the server id,
// so ForServer adapts a ProgressSink into a ProgressFunc for one server.
type ProgressSink interface {
	Sink(serverID string, obs syncengine.ProgressObservation)
}

// LogSink writes every observation as a structured log line. Useful for
// a headless host or for debugging; never blocks, never errors.
type LogSink struct{}

// Sink implements ProgressSink.
func (LogSink) Sink(serverID string, obs syncengine.ProgressObservation) {
	log.WithFields(log.Fields{
		"server_id": serverID,
		"phase":     obs.Phase.String(),
	}).WithFields(toLogFields(obs.Fields)).Debug("sync progress")
}

func toLogFields(fields map[string]interface{}) log.Fields {
	out := make(log.Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// ChanSink delivers observations over a buffered channel, for a host that
// wants to forward them to a UI event loop or websocket without the
// syncengine ever blocking on slow delivery: a full channel drops the
// observation rather than stalling the synchronization.
type ChanSink struct {
	ch chan ServerObservation
}

// ServerObservation pairs a progress observation with the server it came
// from, since a ChanSink is typically shared across a multi-server host.
type ServerObservation struct {
	ServerID string
	Obs      syncengine.ProgressObservation
}

// NewChanSink returns a ChanSink buffering up to capacity observations.
func NewChanSink(capacity int) *ChanSink {
	return &ChanSink{ch: make(chan ServerObservation, capacity)}
}

// Sink implements ProgressSink. It never blocks: an observation is
// dropped if the channel is full.
func (c *ChanSink) Sink(serverID string, obs syncengine.ProgressObservation) {
	select {
	case c.ch <- ServerObservation{ServerID: serverID, Obs: obs}:
	default:
	}
}

// Observations returns the channel to range over for delivered
// observations. ChanSink never closes the channel, so ranging over it
// does not terminate on its own.
func (c *ChanSink) Observations() <-chan ServerObservation {
	return c.ch
}

// ForServer adapts a ProgressSink into the syncengine.ProgressFunc shape
// for one specific server synchronization.
func ForServer(sink ProgressSink, serverID string) syncengine.ProgressFunc {
	return func(obs syncengine.ProgressObservation) {
		sink.Sink(serverID, obs)
	}
}
