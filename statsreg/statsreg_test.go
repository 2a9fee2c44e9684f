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

package statsreg

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mobster570/clocksync/syncengine"
)

func TestRecordResultExposesOffsetGauge(t *testing.T) {
	r := New()
	r.RecordResult(syncengine.SyncResult{
		ServerID:          "server-a",
		WholeSecondOffset: 5,
		SubsecondOffset:   0.3,
		TotalOffsetMS:     5300,
		Verified:          true,
		Duration:          250 * time.Millisecond,
		PhaseReached:      syncengine.PhaseComplete,
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `clocksync_offset_ms{server_id="server-a"} 5300`)
	require.Contains(t, body, `clocksync_verified{server_id="server-a"} 1`)
}

func TestRecordErrorIncrementsCounter(t *testing.T) {
	r := New()
	r.RecordError("server-b")
	r.RecordError("server-b")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Contains(t, rec.Body.String(), `clocksync_sync_errors_total{server_id="server-b"} 2`)
}
