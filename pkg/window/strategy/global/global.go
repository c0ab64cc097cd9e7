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

// Package global implements the Global window, a single window that covers
// every representable event time. Grouping with it degenerates to a plain
// per-key aggregation.
package global

import (
	"time"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Global implements the global window assigner.
type Global struct{}

var _ window.Assigner = (*Global)(nil)

// NewGlobal returns a Global window assigner.
func NewGlobal() *Global {
	return &Global{}
}

func (*Global) Strategy() window.Strategy {
	return window.Global
}

func (*Global) Merging() bool {
	return false
}

// AssignWindows assigns every event to the one global window, whose max
// timestamp is window.EndOfGlobalWindow.
func (*Global) AssignWindows(_ time.Time) []window.Interval {
	return []window.Interval{window.NewInterval(window.MinEventTime, window.EndOfGlobalWindow.Add(time.Millisecond))}
}
