/*
Copyright 2025 The Windrow Authors.

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

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/windrowlabs/windrow/pkg/window"
	"github.com/windrowlabs/windrow/pkg/window/strategy/fixed"
	"github.com/windrowlabs/windrow/pkg/window/strategy/global"
	"github.com/windrowlabs/windrow/pkg/window/strategy/session"
	"github.com/windrowlabs/windrow/pkg/window/strategy/sliding"
)

var rootCmd = &cobra.Command{
	Use:   "windrow",
	Short: "windrow merges and partially aggregates keyed, windowed record streams",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewWatchCommand())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// buildOutputTime maps the --output-time flag to its rule.
func buildOutputTime(name string) (window.OutputTimeFn, error) {
	switch name {
	case "earliest":
		return window.OutputAtEarliestInputTimestamp(), nil
	case "latest":
		return window.OutputAtLatestInputTimestamp(), nil
	case "end":
		return window.OutputAtEndOfWindow(), nil
	default:
		return nil, fmt.Errorf("unsupported output-time rule %q", name)
	}
}

// buildAssigner constructs the window assigner the window flags describe.
func buildAssigner(windowType string, length, slide, gap time.Duration) (window.Assigner, error) {
	switch windowType {
	case "fixed":
		if length <= 0 {
			return nil, fmt.Errorf("fixed windows need a positive --length, got %v", length)
		}
		return fixed.NewFixed(length), nil
	case "sliding":
		if length <= 0 || slide <= 0 {
			return nil, fmt.Errorf("sliding windows need a positive --length and --slide, got %v and %v", length, slide)
		}
		return sliding.NewSliding(length, slide, sliding.WithAssignmentCache(1024)), nil
	case "session":
		if gap <= 0 {
			return nil, fmt.Errorf("session windows need a positive --gap, got %v", gap)
		}
		return session.NewSession(gap), nil
	case "global":
		return global.NewGlobal(), nil
	default:
		return nil, fmt.Errorf("unsupported window type %q", windowType)
	}
}
