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

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig("/does/not/exist")
	require.Error(t, err)
}

func TestReadConfigDefaults(t *testing.T) {
	f, err := os.CreateTemp("", "clocksync")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	cfg, err := ReadConfig(f.Name())
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestReadConfigOverridesServers(t *testing.T) {
	f, err := os.CreateTemp("", "clocksync")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.WriteString("servers:\n  - id: a\n    url: http://a.example.com\n  - id: b\n    url: http://b.example.com\nsync_interval: 30s\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := ReadConfig(f.Name())
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 2)
	require.Equal(t, "a", cfg.Servers[0].ID)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsEmptyServers(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsDuplicateServerIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Servers = []ServerConfig{
		{ID: "dup", URL: "http://a.example.com"},
		{ID: "dup", URL: "http://b.example.com"},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Servers = []ServerConfig{{ID: "a", URL: "http://a.example.com"}}
	cfg.Engine.IQRMultiplier = 0
	require.Error(t, cfg.Validate())
}
