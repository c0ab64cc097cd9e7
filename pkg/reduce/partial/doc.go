// Package partial implements the pre-aggregation pass of a keyed, windowed
// reduce. It consumes one group, all records of one key whose windows may
// still need consolidation, and produces one partially aggregated record per
// distinct window in a single pass.
//
// The pass has three stages. Sequence preparation explodes multi-window
// records into single-window ones and sorts them by the max timestamp of
// their window. Window coalescing (merging reducers only) rewrites the
// windows in place so that every run of transitively overlapping windows
// shares the span of the run. Aggregation then walks the sorted sequence
// once, feeding a combine accumulator per run of identical windows and
// folding an output timestamp alongside it.
//
// Results carry accumulators, not final values, and are marked with a
// non-firing pane. Merging the accumulators of the same window across groups
// and firing the window is a later stage's job.
package partial
