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
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/windrowlabs/windrow/pkg/combiner"
	"github.com/windrowlabs/windrow/pkg/metrics"
	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

// ErrEmptyGroup is returned when Reduce is invoked over a group that holds no
// window assignments. Groups are built upstream from at least one record, so
// hitting this is a caller bug.
var ErrEmptyGroup = errors.New("reduce group contains no window assignments")

// Reducer turns one group of same-key records into partially aggregated,
// windowed results.
type Reducer[K comparable, V, A any] interface {
	// Reduce aggregates the group and returns one record per distinct window,
	// carrying the window's accumulator as its value. Errors returned by the
	// combine function are propagated unmodified.
	Reduce(ctx context.Context, records []stream.Record[K, V]) ([]stream.Record[K, A], error)
}

type reducer[K comparable, V, A any] struct {
	fn         combiner.CombineFn[K, V, A]
	outputTime window.OutputTimeFn
	// merging reducers consolidate overlapping windows before aggregating.
	merging      bool
	capacityHint int
	metricLabels map[string]string
}

// NewMergingReducer returns a Reducer for merging window strategies such as
// sessions. Overlapping windows in the group are consolidated to their
// combined span before aggregation.
func NewMergingReducer[K comparable, V, A any](fn combiner.CombineFn[K, V, A], outputTime window.OutputTimeFn, opts ...Option) (Reducer[K, V, A], error) {
	return newReducer(fn, outputTime, true, opts...)
}

// NewReducer returns a Reducer for aligned window strategies such as fixed
// and sliding windows. Windows are taken as-is, records only aggregate
// together when their windows are identical.
func NewReducer[K comparable, V, A any](fn combiner.CombineFn[K, V, A], outputTime window.OutputTimeFn, opts ...Option) (Reducer[K, V, A], error) {
	return newReducer(fn, outputTime, false, opts...)
}

func newReducer[K comparable, V, A any](fn combiner.CombineFn[K, V, A], outputTime window.OutputTimeFn, merging bool, opts ...Option) (*reducer[K, V, A], error) {
	options := DefaultOptions()
	for _, o := range opts {
		if err := o(options); err != nil {
			return nil, err
		}
	}
	return &reducer[K, V, A]{
		fn:           fn,
		outputTime:   outputTime,
		merging:      merging,
		capacityHint: options.resultCapacityHint,
		metricLabels: map[string]string{
			metrics.LabelPipeline: options.pipelineName,
			metrics.LabelVertex:   options.vertexName,
		},
	}, nil
}

// Reduce implements Reducer.
func (r *reducer[K, V, A]) Reduce(ctx context.Context, records []stream.Record[K, V]) ([]stream.Record[K, A], error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	defer func() {
		groupProcessingTime.With(r.metricLabels).Observe(float64(time.Since(start).Milliseconds()))
	}()

	sorted := prepare(records)
	if len(sorted) == 0 {
		log.Errorw("Dropping group with no window assignments, the grouping step must never emit these")
		return nil, ErrEmptyGroup
	}
	groupsCount.With(r.metricLabels).Inc()
	recordsCount.With(r.metricLabels).Add(float64(len(sorted)))

	if r.merging {
		if rewritten := CoalesceWindows(sorted); rewritten > 0 {
			windowsMergedCount.With(r.metricLabels).Add(float64(rewritten))
			log.Debugw("Consolidated overlapping windows", zap.Int("rewrittenRecords", rewritten))
		}
	}

	out, err := r.scan(ctx, sorted)
	if err != nil {
		return nil, err
	}
	resultsCount.With(r.metricLabels).Add(float64(len(out)))
	return out, nil
}

// prepare explodes multi-window records into single-window ones and sorts
// them ascending by the max timestamp of their window, which is the order the
// coalescing and aggregation passes rely on.
func prepare[K comparable, V any](records []stream.Record[K, V]) []stream.Record[K, V] {
	sorted := make([]stream.Record[K, V], 0, len(records))
	for _, rec := range records {
		sorted = append(sorted, rec.Explode()...)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Window().MaxTimestamp().Before(sorted[j].Window().MaxTimestamp())
	})
	return sorted
}

// scan walks the sorted records once and produces one result per run of
// identical windows. Each run feeds a fresh accumulator and folds an output
// timestamp from the records' event times.
func (r *reducer[K, V, A]) scan(ctx context.Context, sorted []stream.Record[K, V]) ([]stream.Record[K, A], error) {
	var (
		first   = sorted[0]
		key     = first.Key
		current = first.Window()
	)
	acc, err := r.fn.CreateAccumulator(ctx, key)
	if err != nil {
		return nil, err
	}
	if acc, err = r.fn.AddInput(ctx, key, acc, first.Value); err != nil {
		return nil, err
	}
	outputTime := r.outputTime.AssignOutputTime(first.EventTime, current)

	capacity := r.capacityHint
	if capacity < 1 {
		capacity = 1
	}
	out := make([]stream.Record[K, A], 0, capacity)
	emit := func() {
		out = append(out, stream.Record[K, A]{
			Key:       key,
			Value:     acc,
			EventTime: outputTime,
			Windows:   []window.Interval{current},
			Pane:      stream.NoFiringPane,
		})
	}

	for _, rec := range sorted[1:] {
		next := rec.Window()
		if current.Equals(next) {
			if acc, err = r.fn.AddInput(ctx, key, acc, rec.Value); err != nil {
				return nil, err
			}
			outputTime = r.outputTime.Combine(outputTime, r.outputTime.AssignOutputTime(rec.EventTime, current))
			continue
		}
		emit()
		current = next
		if acc, err = r.fn.CreateAccumulator(ctx, key); err != nil {
			return nil, err
		}
		if acc, err = r.fn.AddInput(ctx, key, acc, rec.Value); err != nil {
			return nil, err
		}
		outputTime = r.outputTime.AssignOutputTime(rec.EventTime, current)
	}
	emit()
	return out, nil
}
