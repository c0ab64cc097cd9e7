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

package window

import (
	"fmt"
	"math"
	"time"
)

var (
	// MinEventTime is the earliest event time windrow can represent.
	MinEventTime = time.UnixMilli(math.MinInt64 / 1000)
	// MaxEventTime is the latest event time windrow can represent.
	MaxEventTime = time.UnixMilli(math.MaxInt64 / 1000)
	// EndOfGlobalWindow is the max timestamp of the global window. It is
	// pulled in from MaxEventTime so that a stage can still hold output
	// past the end of its input.
	EndOfGlobalWindow = MaxEventTime.Add(-24 * time.Hour)
)

// Interval is a half-open event-time window [Start, End). All boundaries are
// at millisecond granularity.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns the window [start, end).
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// MaxTimestamp returns the latest timestamp that falls inside the window,
// which is one millisecond before the exclusive end.
func (w Interval) MaxTimestamp() time.Time {
	return w.End.Add(-time.Millisecond)
}

// Intersects returns whether the two half-open windows overlap. Windows that
// merely touch, like [0,10) and [10,20), do not intersect.
func (w Interval) Intersects(o Interval) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Span returns the smallest window covering both w and o.
func (w Interval) Span(o Interval) Interval {
	span := w
	if o.Start.Before(span.Start) {
		span.Start = o.Start
	}
	if o.End.After(span.End) {
		span.End = o.End
	}
	return span
}

// Equals compares the two windows by instant, not by time.Time representation,
// so windows built in different locations still compare equal.
func (w Interval) Equals(o Interval) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

// Contains returns whether t falls inside the window.
func (w Interval) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Interval) String() string {
	return fmt.Sprintf("[%v:%v)", w.Start.UnixMilli(), w.End.UnixMilli())
}
