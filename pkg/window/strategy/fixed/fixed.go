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

// Package fixed implements Fixed windows. Fixed windows (sometimes called tumbling windows) are
// defined by a static window size, e.g. minutely windows or hourly windows. They are generally aligned, i.e. every
// window applies across all the data for the corresponding period of time, so the windows of one key never overlap
// and never need merging.
package fixed

import (
	"time"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Fixed implements the fixed window assigner.
type Fixed struct {
	// length is the temporal length of the window.
	length time.Duration
}

var _ window.Assigner = (*Fixed)(nil)

// NewFixed returns a Fixed window assigner.
func NewFixed(length time.Duration) *Fixed {
	return &Fixed{length: length}
}

func (*Fixed) Strategy() window.Strategy {
	return window.Fixed
}

func (*Fixed) Merging() bool {
	return false
}

// AssignWindows assigns a window for the given eventTime.
func (f *Fixed) AssignWindows(eventTime time.Time) []window.Interval {
	start := eventTime.Truncate(f.length)

	// Assignment of windows should follow a Left inclusive and right exclusive
	// principle. Since we use truncate here, it is guaranteed that any element
	// on the boundary will automatically fall in to the window to the right
	// of the boundary thereby satisfying the requirement.
	return []window.Interval{window.NewInterval(start, start.Add(f.length))}
}
