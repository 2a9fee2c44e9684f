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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mobster570/clocksync/clock"
	"github.com/mobster570/clocksync/config"
	"github.com/mobster570/clocksync/extractor"
	"github.com/mobster570/clocksync/host"
	"github.com/mobster570/clocksync/statsreg"
	"github.com/mobster570/clocksync/syncengine"
)

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Continuously synchronize against every server in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := host.NewMemoryStore()
	registry := host.NewRegistry()
	metrics := statsreg.New()
	sink := host.LogSink{}

	for _, server := range cfg.Servers {
		if err := store.Put(host.Server{ID: server.ID, URL: server.URL, Status: host.StatusIdle}); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metrics.Serve(ctx, cfg.MonitoringPort)
	})

	for _, server := range cfg.Servers {
		server := server
		g.Go(func() error {
			return syncLoop(ctx, server, cfg.SyncInterval, store, registry, metrics, sink)
		})
	}

	return g.Wait()
}

func syncLoop(ctx context.Context, server config.ServerConfig, interval time.Duration, store *host.MemoryStore, registry *host.Registry, metrics *statsreg.Registry, sink host.ProgressSink) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runOnce(ctx, server, store, registry, metrics, sink)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func runOnce(ctx context.Context, server config.ServerConfig, store *host.MemoryStore, registry *host.Registry, metrics *statsreg.Registry, sink host.ProgressSink) {
	syncCtx, err := registry.Start(ctx, server.ID)
	if err != nil {
		log.WithError(err).WithField("server_id", server.ID).Warn("skipping, synchronization already in progress")
		return
	}
	defer registry.Finish(server.ID)

	store.MarkSyncing(server.ID)
	progress := host.ForServer(sink, server.ID)

	result, err := syncengine.Synchronize(syncCtx, server.ID, server.URL, extractor.DateHeaderExtractor{}, clock.NewRealClock(), progress)
	if err != nil {
		log.WithError(err).WithField("server_id", server.ID).Error("synchronization failed")
		store.MarkError(server.ID, err)
		metrics.RecordError(server.ID)
		return
	}

	if err := store.AppendHistory(server.ID, result); err != nil {
		log.WithError(err).WithField("server_id", server.ID).Warn("failed to persist synchronization result")
	}
	metrics.RecordResult(result)
}
