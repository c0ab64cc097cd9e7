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

package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/windrowlabs/windrow/pkg/combiner"
	"github.com/windrowlabs/windrow/pkg/reduce/partial"
	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var baseTime = time.Unix(1651129201, 0)

func mkw(start, end int64) window.Interval {
	return window.NewInterval(baseTime.Add(time.Duration(start)*time.Second), baseTime.Add(time.Duration(end)*time.Second))
}

func mkr(key string, value int, eventSec int64, w window.Interval) stream.Record[string, int] {
	return stream.Record[string, int]{
		Key:       key,
		Value:     value,
		EventTime: baseTime.Add(time.Duration(eventSec) * time.Second),
		Windows:   []window.Interval{w},
	}
}

func sumReducer(t *testing.T) partial.Reducer[string, int, int] {
	t.Helper()
	reducer, err := partial.NewMergingReducer[string, int, int](combiner.Sum[string, int](), window.OutputAtEndOfWindow())
	require.NoError(t, err)
	return reducer
}

func TestRun_AllGroups(t *testing.T) {
	runner, err := NewRunner[string, int, int](sumReducer(t), WithParallelism(3), WithPipelineName("simple-pipeline"), WithVertexName("compute-sum"))
	require.NoError(t, err)

	groups := []Group[string, int]{
		{Key: "a", Records: []stream.Record[string, int]{mkr("a", 1, 1, mkw(0, 10)), mkr("a", 2, 2, mkw(0, 10))}},
		{Key: "b", Records: []stream.Record[string, int]{mkr("b", 5, 3, mkw(0, 10))}},
		{Key: "c", Records: []stream.Record[string, int]{mkr("c", 7, 11, mkw(10, 20))}},
	}
	results, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[string]bool{}
	for i, gr := range results {
		assert.Equal(t, groups[i].Key, gr.Key)
		assert.NotEmpty(t, gr.InvocationID)
		assert.False(t, seen[gr.InvocationID], "invocation ids must be unique")
		seen[gr.InvocationID] = true
		require.Len(t, gr.Results, 1)
	}
	assert.Equal(t, 3, results[0].Results[0].Value)
	assert.Equal(t, 5, results[1].Results[0].Value)
	assert.Equal(t, 7, results[2].Results[0].Value)

	stats := runner.Stats()
	assert.Equal(t, int64(3), stats.GroupsProcessed)
	assert.Equal(t, int64(0), stats.GroupsFailed)
	assert.Equal(t, int64(3), stats.ResultsProduced)
}

func TestRun_PartialFailure(t *testing.T) {
	runner, err := NewRunner[string, int, int](sumReducer(t))
	require.NoError(t, err)

	// The empty group fails, the others still get reduced.
	groups := []Group[string, int]{
		{Key: "a", Records: []stream.Record[string, int]{mkr("a", 1, 1, mkw(0, 10))}},
		{Key: "b"},
		{Key: "c", Records: []stream.Record[string, int]{mkr("c", 3, 2, mkw(0, 10))}},
	}
	results, err := runner.Run(context.Background(), groups)
	assert.ErrorIs(t, err, partial.ErrEmptyGroup)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Key)
	assert.Equal(t, "c", results[1].Key)

	stats := runner.Stats()
	assert.Equal(t, int64(2), stats.GroupsProcessed)
	assert.Equal(t, int64(1), stats.GroupsFailed)
}

func TestRun_BoundedParallelism(t *testing.T) {
	var inFlight, peak atomic.Int64
	fn := combiner.Funcs[string, int, int]{
		Create: func(_ context.Context, _ string) (int, error) { return 0, nil },
		Add: func(_ context.Context, _ string, acc int, v int) (int, error) {
			cur := inFlight.Inc()
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Dec()
			return acc + v, nil
		},
	}
	reducer, err := partial.NewMergingReducer[string, int, int](fn, window.OutputAtEndOfWindow())
	require.NoError(t, err)
	runner, err := NewRunner[string, int, int](reducer, WithParallelism(2))
	require.NoError(t, err)

	groups := make([]Group[string, int], 0, 8)
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		groups = append(groups, Group[string, int]{Key: key, Records: []stream.Record[string, int]{mkr(key, 1, 1, mkw(0, 10))}})
	}
	_, err = runner.Run(context.Background(), groups)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(2))
	// every reduce slept for a millisecond, the smoothed latency saw that
	assert.GreaterOrEqual(t, runner.Stats().SmoothedReduceMillis, 1.0)
}

func TestRun_NoGroups(t *testing.T) {
	runner, err := NewRunner[string, int, int](sumReducer(t))
	require.NoError(t, err)
	results, err := runner.Run(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewRunner_InvalidParallelism(t *testing.T) {
	_, err := NewRunner[string, int, int](sumReducer(t), WithParallelism(0))
	assert.Error(t, err)
}

func TestGroupByKey(t *testing.T) {
	records := []stream.Record[string, int]{
		mkr("b", 1, 1, mkw(0, 10)),
		mkr("a", 2, 2, mkw(0, 10)),
		mkr("b", 3, 3, mkw(0, 10)),
		mkr("c", 4, 4, mkw(0, 10)),
		mkr("a", 5, 5, mkw(0, 10)),
	}
	groups := GroupByKey(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Key)
	assert.Equal(t, "a", groups[1].Key)
	assert.Equal(t, "c", groups[2].Key)
	assert.Len(t, groups[0].Records, 2)
	assert.Len(t, groups[1].Records, 2)
	assert.Len(t, groups[2].Records, 1)

	assert.Empty(t, GroupByKey[string, int](nil))
}
