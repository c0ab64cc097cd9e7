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

// Strategy is the windowing strategy of an Assigner.
type Strategy int

const (
	_ Strategy = iota // Strategy "0" is undefined
	Fixed
	Sliding
	Session
	Global
)

func (s Strategy) String() string {
	switch s {
	case Fixed:
		return "Fixed"
	case Sliding:
		return "Sliding"
	case Session:
		return "Session"
	case Global:
		return "Global"
	default:
		return "Unknown"
	}
}

// Assigner assigns interval windows to an event based on its event time.
// Assigners are stateless, assignment depends only on the event time and the
// strategy parameters.
type Assigner interface {
	// Strategy returns the window strategy of the assigner.
	Strategy() Strategy
	// AssignWindows returns the set of windows the event time belongs to.
	// Callers own the returned slice.
	AssignWindows(eventTime time.Time) []Interval
	// Merging returns whether windows produced by this assigner can overlap
	// per key and therefore must be consolidated by a merging reduce.
	Merging() bool
}
