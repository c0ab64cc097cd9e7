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

import "sort"

// MergeOverlapping collapses every set of transitively intersecting windows
// into its span and returns the merged windows sorted by start time. The
// input is not modified. Windows that merely touch stay separate, matching
// Interval.Intersects.
//
// This is the same window consolidation the partial reduce applies to a
// sorted group, provided here for callers that deal in plain window sets,
// e.g. a final merge over partial results.
func MergeOverlapping(windows []Interval) []Interval {
	if len(windows) == 0 {
		return nil
	}
	sorted := make([]Interval, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, w := range sorted[1:] {
		if current.Intersects(w) {
			current = current.Span(w)
			continue
		}
		merged = append(merged, current)
		current = w
	}
	return append(merged, current)
}
