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

// Package config loads the on-disk server list and deployment settings for
// a clocksync host. The engine's own tuning parameters are fixed by
// design; EngineConfig exists so a host can record what those fixed
// values are without hardcoding them a second time at the call site.
package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/mobster570/clocksync/syncengine"
)

// ServerConfig describes one target to synchronize against.
type ServerConfig struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// Validate ServerConfig is sane.
func (c *ServerConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id must be specified")
	}
	if c.URL == "" {
		return fmt.Errorf("url must be specified")
	}
	return nil
}

// EngineConfig mirrors the syncengine's fixed tuning parameters so a
// deployment can record and report the values it is running with. These
// values are descriptive, not injected back into syncengine: the engine's
// constants are fixed and never parameterized per call.
type EngineConfig struct {
	MaxRetries            int     `yaml:"max_retries"`
	MinIntervalSecs       float64 `yaml:"min_interval_secs"`
	DefaultProbeCount     int     `yaml:"default_probe_count"`
	IQRMultiplier         float64 `yaml:"iqr_multiplier"`
	BinarySearchThreshold float64 `yaml:"binary_search_threshold"`
}

// Validate EngineConfig is sane.
func (c *EngineConfig) Validate() error {
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be positive")
	}
	if c.MinIntervalSecs <= 0 {
		return fmt.Errorf("min_interval_secs must be positive")
	}
	if c.DefaultProbeCount <= 0 {
		return fmt.Errorf("default_probe_count must be positive")
	}
	if c.IQRMultiplier <= 0 {
		return fmt.Errorf("iqr_multiplier must be positive")
	}
	if c.BinarySearchThreshold <= 0 || c.BinarySearchThreshold >= 1 {
		return fmt.Errorf("binary_search_threshold must be between 0 and 1")
	}
	return nil
}

// Config specifies clocksync run options.
type Config struct {
	Servers        []ServerConfig `yaml:"servers"`
	Engine         EngineConfig   `yaml:"engine"`
	SyncInterval   time.Duration  `yaml:"sync_interval"`
	MonitoringPort int            `yaml:"monitoring_port"`
}

// DefaultConfig returns Config initialized with the engine's fixed
// defaults.
func DefaultConfig() *Config {
	return &Config{
		SyncInterval:   time.Minute,
		MonitoringPort: 4269,
		Engine: EngineConfig{
			MaxRetries:            syncengine.MaxRetries,
			MinIntervalSecs:       syncengine.MinIntervalSecs,
			DefaultProbeCount:     syncengine.DefaultProbeCount,
			IQRMultiplier:         syncengine.IQRMultiplier,
			BinarySearchThreshold: syncengine.BinarySearchThreshold,
		},
	}
}

// Validate config is sane.
func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		return fmt.Errorf("at least one server must be specified")
	}
	seen := make(map[string]bool, len(c.Servers))
	for i := range c.Servers {
		if err := c.Servers[i].Validate(); err != nil {
			return fmt.Errorf("invalid server at index %d: %w", i, err)
		}
		if seen[c.Servers[i].ID] {
			return fmt.Errorf("duplicate server id %q", c.Servers[i].ID)
		}
		seen[c.Servers[i].ID] = true
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval must be greater than zero")
	}
	if c.MonitoringPort < 0 {
		return fmt.Errorf("monitoring_port must be 0 or positive")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}
	return nil
}

// ReadConfig reads config from a YAML file, starting from DefaultConfig
// so fields absent on disk keep their fixed defaults.
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	log.Debugf("config: %+v", c)
	return c, nil
}
