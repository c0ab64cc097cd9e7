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

import "time"

// OutputTimeFn decides the event time of an aggregated result from the event
// times of the records that produced it.
type OutputTimeFn interface {
	// AssignOutputTime proposes an output time for a record with the given
	// event time, grouped under window w.
	AssignOutputTime(t time.Time, w Interval) time.Time
	// Combine folds two proposed output times into one. Combine must be
	// associative and commutative, the fold order over a group is
	// unspecified.
	Combine(a, b time.Time) time.Time
}

// OutputAtEarliestInputTimestamp returns the rule that stamps a result with
// the earliest event time among its inputs.
func OutputAtEarliestInputTimestamp() OutputTimeFn {
	return earliestOutputTime{}
}

// OutputAtLatestInputTimestamp returns the rule that stamps a result with the
// latest event time among its inputs.
func OutputAtLatestInputTimestamp() OutputTimeFn {
	return latestOutputTime{}
}

// OutputAtEndOfWindow returns the rule that stamps a result with the max
// timestamp of its window, regardless of the input event times.
func OutputAtEndOfWindow() OutputTimeFn {
	return endOfWindowOutputTime{}
}

type earliestOutputTime struct{}

func (earliestOutputTime) AssignOutputTime(t time.Time, _ Interval) time.Time {
	return t
}

func (earliestOutputTime) Combine(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

type latestOutputTime struct{}

func (latestOutputTime) AssignOutputTime(t time.Time, _ Interval) time.Time {
	return t
}

func (latestOutputTime) Combine(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

type endOfWindowOutputTime struct{}

func (endOfWindowOutputTime) AssignOutputTime(_ time.Time, w Interval) time.Time {
	return w.MaxTimestamp()
}

// Combine for end-of-window output picks either argument, all proposals for
// one window are the same instant.
func (endOfWindowOutputTime) Combine(a, _ time.Time) time.Time {
	return a
}
