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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mobster570/clocksync/syncengine"
)

func TestMemoryStorePutAndGet(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Put(Server{ID: "a", URL: "http://a.example.com", Status: StatusIdle}))

	server, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, StatusIdle, server.Status)
}

func TestMemoryStoreGetMissingReturnsFalse(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.Get("missing")
	require.False(t, ok)
}

func TestMemoryStorePutRejectsEmptyID(t *testing.T) {
	s := NewMemoryStore()
	require.Error(t, s.Put(Server{URL: "http://a.example.com"}))
}

func TestAppendHistoryUpdatesServerRecordAndHistory(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Put(Server{ID: "a", URL: "http://a.example.com", Status: StatusSyncing}))

	result := syncengine.SyncResult{
		ServerID:      "a",
		TotalOffsetMS: 5300,
		SyncedAt:      time.Unix(1000, 0),
		Verified:      true,
	}
	require.NoError(t, s.AppendHistory("a", result))

	server, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, StatusSynced, server.Status)
	require.Equal(t, 5300.0, server.OffsetMS)
	require.Equal(t, time.Unix(1000, 0), server.LastSyncAt)

	history := s.History("a")
	require.Len(t, history, 1)
	require.Equal(t, result, history[0])
}

func TestAppendHistoryToDeletedServerCreatesNoRecord(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.AppendHistory("ghost", syncengine.SyncResult{ServerID: "ghost"}))
	require.Len(t, s.History("ghost"), 1)
	_, ok := s.Get("ghost")
	require.False(t, ok)
}

func TestMarkErrorRecordsMessage(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Put(Server{ID: "a", Status: StatusSyncing}))
	s.MarkError("a", errors.New("boom"))

	server, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, StatusError, server.Status)
	require.Equal(t, "boom", server.LastError)
}

func TestServerStatusString(t *testing.T) {
	require.Equal(t, "idle", StatusIdle.String())
	require.Equal(t, "syncing", StatusSyncing.String())
	require.Equal(t, "synced", StatusSynced.String())
	require.Equal(t, "error", StatusError.String())
}
