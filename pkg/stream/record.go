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

// Package stream defines the windowed record that flows between the stages of
// a windrow pipeline, along with the pane metadata that rides on it.
package stream

import (
	"fmt"
	"time"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Record is one keyed element together with its event time and the windows it
// has been assigned to. A record fresh out of window assignment may sit in
// several windows at once (sliding windows do that), grouping always works on
// single-window records produced by Explode.
type Record[K comparable, V any] struct {
	Key       K
	Value     V
	EventTime time.Time
	Windows   []window.Interval
	Pane      Pane
}

// Explode splits a multi-window record into one single-window record per
// window. Each copy owns a fresh one-element window slice, so rewriting the
// window of one copy never aliases another. A record with no windows explodes
// to nothing, producing such a record is the assigner's bug.
func (r Record[K, V]) Explode() []Record[K, V] {
	out := make([]Record[K, V], 0, len(r.Windows))
	for _, w := range r.Windows {
		c := r
		c.Windows = []window.Interval{w}
		out = append(out, c)
	}
	return out
}

// Window returns the sole window of a single-window record.
func (r Record[K, V]) Window() window.Interval {
	return r.Windows[0]
}

// SetWindow rewrites the window of a single-window record in place.
func (r *Record[K, V]) SetWindow(w window.Interval) {
	r.Windows[0] = w
}

func (r Record[K, V]) String() string {
	return fmt.Sprintf("{key=%v eventTime=%v windows=%v pane=%v}", r.Key, r.EventTime.UnixMilli(), r.Windows, r.Pane)
}
