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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mobster570/clocksync/clock"
	"github.com/mobster570/clocksync/extractor"
	"github.com/mobster570/clocksync/host"
	"github.com/mobster570/clocksync/syncengine"
)

var (
	verifiedString   = color.GreenString("verified")
	unverifiedString = color.YellowString("unverified")
	failedString     = color.RedString("failed")
)

func verifiedLabel(result syncengine.SyncResult) string {
	if result.Verified {
		return verifiedString
	}
	return unverifiedString
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync URL [URL...]",
		Short: "Run one synchronization against each URL and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(args)
		},
	}
	return cmd
}

func runSync(urls []string) error {
	ctx := context.Background()
	sink := host.LogSink{}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"server", "whole_s", "subsecond_s", "total_ms", "status", "phase"})

	var firstErr error
	for i, url := range urls {
		serverID := fmt.Sprintf("server-%d", i)
		progress := host.ForServer(sink, serverID)

		result, err := syncengine.Synchronize(ctx, serverID, url, extractor.DateHeaderExtractor{}, clock.NewRealClock(), progress)
		if err != nil {
			log.WithError(err).WithField("url", url).Error("synchronization failed")
			table.Append([]string{url, "-", "-", "-", failedString, "error"})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		table.Append([]string{
			url,
			fmt.Sprintf("%d", result.WholeSecondOffset),
			fmt.Sprintf("%.3f", result.SubsecondOffset),
			fmt.Sprintf("%.1f", result.TotalOffsetMS),
			verifiedLabel(result),
			result.PhaseReached.String(),
		})
	}

	table.Render()
	return firstErr
}
