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

package partial

import (
	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

// CoalesceWindows rewrites the windows of sorted in place so that every run
// of transitively overlapping windows carries the combined span of the run.
// Records must hold exactly one window each and be sorted ascending by the
// max timestamp of that window; prepare produces exactly this shape.
//
// The pass grows a running span while consecutive windows keep intersecting
// it. When a window falls outside the span, the finished run is retrofitted
// backwards with the span and a new run starts. A run that ends at the last
// record is retrofitted only when it spans more than one record, a trailing
// singleton always keeps its own window.
//
// Returns the number of records whose window was actually widened.
func CoalesceWindows[K comparable, V any](sorted []stream.Record[K, V]) int {
	if len(sorted) == 0 {
		return 0
	}
	rewritten := 0
	runStart := 0
	current := sorted[0].Window()
	for i := 1; i < len(sorted); i++ {
		next := sorted[i].Window()
		if current.Intersects(next) {
			current = current.Span(next)
			continue
		}
		rewritten += retrofit(sorted, runStart, i-1, current)
		runStart = i
		current = next
	}
	if runStart < len(sorted)-1 {
		rewritten += retrofit(sorted, runStart, len(sorted)-1, current)
	}
	return rewritten
}

// retrofit stamps w onto records[from..to], walking backwards from the end
// of the run.
func retrofit[K comparable, V any](records []stream.Record[K, V], from, to int, w window.Interval) int {
	rewritten := 0
	for j := to; j >= from; j-- {
		if !records[j].Window().Equals(w) {
			rewritten++
		}
		records[j].SetWindow(w)
	}
	return rewritten
}
