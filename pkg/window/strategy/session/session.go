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

// Package session implements Session windows. Session windows are unaligned,
// the window of an event spans [eventTime, eventTime+gap), and the windows of
// events that arrive within one another's gap overlap. The consolidation of
// the overlapping proto-windows of a key into the final session spans happens
// downstream in the merging reduce, which is why Merging reports true.
package session

import (
	"time"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Session implements the session window assigner.
type Session struct {
	// gap is the silence after an event that closes its session.
	gap time.Duration
}

var _ window.Assigner = (*Session)(nil)

// NewSession returns a Session window assigner.
func NewSession(gap time.Duration) *Session {
	return &Session{gap: gap}
}

func (*Session) Strategy() window.Strategy {
	return window.Session
}

func (*Session) Merging() bool {
	return true
}

// AssignWindows assigns the proto-session [eventTime, eventTime+gap).
func (s *Session) AssignWindows(eventTime time.Time) []window.Interval {
	return []window.Interval{window.NewInterval(eventTime, eventTime.Add(s.gap))}
}
