// Package window implements windowing constructs. In the world of data processing on an unbounded stream, Windowing
// is a concept of grouping data using temporal boundaries. We use event-time to discover temporal boundaries on an
// unbounded, infinite stream, and an aggregation can be applied on each group of data the boundaries produce.
//
// Windows are of different types, quite popular ones are Fixed windows and Sliding windows. Sessions are managed via
// a little less popular windowing strategy called Session windows. Windowing is implemented as a two stage process,
//   - Assign windows - assign the event to one or more interval windows
//   - Merge windows - consolidate the windows of events that belong together
//
// The two stage approach is required because assignment happens as elements stream in, but merging can only happen
// once the elements of a key are brought together. This is important esp. for session windows where a new event can
// extend the span of an existing window.
//
// Windows may be either aligned (e.g., Fixed, Sliding), i.e. applied across all the data for the window of time in
// question, or unaligned, (e.g., Session) i.e. applied across only specific subsets of the data (e.g. per key) for the
// given window of time. Aligned windows never need merging; unaligned windows do, and the merge itself is performed
// downstream by the partial reduce pass.
package window
