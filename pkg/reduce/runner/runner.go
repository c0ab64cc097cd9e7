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

// Package runner executes the partial reduce over many key groups in
// parallel. Groups never share state, so the only coordination needed is a
// bound on in-flight reduces and collecting the results.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/windrowlabs/windrow/pkg/reduce/partial"
	"github.com/windrowlabs/windrow/pkg/shared/ewma"
	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/stream"
)

// Group is one key group, the unit of a reduce invocation. All records carry
// the same key.
type Group[K comparable, V any] struct {
	Key     K
	Records []stream.Record[K, V]
}

// GroupResult is the outcome of reducing one group.
type GroupResult[K comparable, A any] struct {
	Key K
	// InvocationID identifies the reduce invocation in logs and errors.
	InvocationID string
	Results      []stream.Record[K, A]
	Elapsed      time.Duration
}

// Stats are cumulative counters across all Run calls on a Runner.
type Stats struct {
	GroupsProcessed int64
	GroupsFailed    int64
	ResultsProduced int64
	// SmoothedReduceMillis is a moving average of per-group reduce latency.
	SmoothedReduceMillis float64
}

// Runner fans key groups out over a bounded pool of reduce invocations.
type Runner[K comparable, V, A any] struct {
	reducer      partial.Reducer[K, V, A]
	parallelism  int
	pipelineName string
	vertexName   string

	groupsProcessed *atomic.Int64
	groupsFailed    *atomic.Int64
	resultsProduced *atomic.Int64

	latencyMu sync.Mutex
	latency   ewma.EWMA
}

// NewRunner returns a Runner executing reduces through the given reducer.
func NewRunner[K comparable, V, A any](reducer partial.Reducer[K, V, A], opts ...Option) (*Runner[K, V, A], error) {
	options := DefaultOptions()
	for _, o := range opts {
		if err := o(options); err != nil {
			return nil, err
		}
	}
	return &Runner[K, V, A]{
		reducer:         reducer,
		parallelism:     options.parallelism,
		pipelineName:    options.pipelineName,
		vertexName:      options.vertexName,
		groupsProcessed: atomic.NewInt64(0),
		groupsFailed:    atomic.NewInt64(0),
		resultsProduced: atomic.NewInt64(0),
		latency:         ewma.NewSimpleEWMA(),
	}, nil
}

// Run reduces every group and returns the per-group results in group order.
// Every group is attempted even when others fail; the failures are combined
// into the returned error and the successful results are still returned.
func (r *Runner[K, V, A]) Run(ctx context.Context, groups []Group[K, V]) ([]GroupResult[K, A], error) {
	log := logging.FromContext(ctx).With("pipeline", r.pipelineName, "vertex", r.vertexName)

	// One slot per group, written only by that group's goroutine.
	results := make([]GroupResult[K, A], len(groups))
	errs := make([]error, len(groups))

	var eg errgroup.Group
	eg.SetLimit(r.parallelism)
	for i, group := range groups {
		i, group := i, group
		eg.Go(func() error {
			id := uuid.New().String()
			start := time.Now()
			out, err := r.reducer.Reduce(ctx, group.Records)
			if err != nil {
				r.groupsFailed.Inc()
				errs[i] = fmt.Errorf("reduce group %v (invocation %s): %w", group.Key, id, err)
				log.Errorw("Reduce failed", zap.String("invocationID", id), zap.Error(err))
				return nil
			}
			elapsed := time.Since(start)
			r.groupsProcessed.Inc()
			r.resultsProduced.Add(int64(len(out)))
			r.observeLatency(elapsed)
			results[i] = GroupResult[K, A]{
				Key:          group.Key,
				InvocationID: id,
				Results:      out,
				Elapsed:      elapsed,
			}
			log.Debugw("Reduced group", zap.String("invocationID", id), zap.Int("records", len(group.Records)), zap.Int("results", len(out)))
			return nil
		})
	}
	// The goroutines report failures through errs, never through the group.
	_ = eg.Wait()

	var combined error
	for _, err := range errs {
		combined = multierr.Append(combined, err)
	}
	if combined == nil {
		return results, nil
	}
	ok := make([]GroupResult[K, A], 0, len(groups))
	for i := range results {
		if errs[i] == nil {
			ok = append(ok, results[i])
		}
	}
	return ok, combined
}

func (r *Runner[K, V, A]) observeLatency(elapsed time.Duration) {
	r.latencyMu.Lock()
	defer r.latencyMu.Unlock()
	r.latency.Add(float64(elapsed.Microseconds()) / 1000.0)
}

// Stats returns the cumulative counters of this Runner.
func (r *Runner[K, V, A]) Stats() Stats {
	r.latencyMu.Lock()
	smoothed := r.latency.Get()
	r.latencyMu.Unlock()
	return Stats{
		GroupsProcessed:      r.groupsProcessed.Load(),
		GroupsFailed:         r.groupsFailed.Load(),
		ResultsProduced:      r.resultsProduced.Load(),
		SmoothedReduceMillis: smoothed,
	}
}

// GroupByKey buckets records into per-key groups, keeping keys in first-seen
// order.
func GroupByKey[K comparable, V any](records []stream.Record[K, V]) []Group[K, V] {
	index := make(map[K]int)
	groups := make([]Group[K, V], 0)
	for _, rec := range records {
		i, ok := index[rec.Key]
		if !ok {
			i = len(groups)
			index[rec.Key] = i
			groups = append(groups, Group[K, V]{Key: rec.Key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
