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

package combiner

import "context"

// Number covers the value types the arithmetic builtins accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum adds up the values of a window.
func Sum[K comparable, V Number]() CombineFn[K, V, V] {
	return sumFn[K, V]{}
}

type sumFn[K comparable, V Number] struct{}

func (sumFn[K, V]) CreateAccumulator(_ context.Context, _ K) (V, error) {
	var zero V
	return zero, nil
}

func (sumFn[K, V]) AddInput(_ context.Context, _ K, acc V, value V) (V, error) {
	return acc + value, nil
}

func (sumFn[K, V]) MergeAccumulators(_ context.Context, _ K, a, b V) (V, error) {
	return a + b, nil
}

// Count counts the values of a window.
func Count[K comparable, V any]() CombineFn[K, V, int64] {
	return countFn[K, V]{}
}

type countFn[K comparable, V any] struct{}

func (countFn[K, V]) CreateAccumulator(_ context.Context, _ K) (int64, error) {
	return 0, nil
}

func (countFn[K, V]) AddInput(_ context.Context, _ K, acc int64, _ V) (int64, error) {
	return acc + 1, nil
}

func (countFn[K, V]) MergeAccumulators(_ context.Context, _ K, a, b int64) (int64, error) {
	return a + b, nil
}

// Extreme is the accumulator of Min and Max. Valid is false until the first
// input arrives, which lets two empty partials merge cleanly.
type Extreme[V Number] struct {
	Valid bool
	Value V
}

// Min tracks the smallest value of a window.
func Min[K comparable, V Number]() CombineFn[K, V, Extreme[V]] {
	return extremeFn[K, V]{keepLeft: func(a, b V) bool { return a <= b }}
}

// Max tracks the largest value of a window.
func Max[K comparable, V Number]() CombineFn[K, V, Extreme[V]] {
	return extremeFn[K, V]{keepLeft: func(a, b V) bool { return a >= b }}
}

type extremeFn[K comparable, V Number] struct {
	keepLeft func(a, b V) bool
}

func (extremeFn[K, V]) CreateAccumulator(_ context.Context, _ K) (Extreme[V], error) {
	return Extreme[V]{}, nil
}

func (e extremeFn[K, V]) AddInput(_ context.Context, _ K, acc Extreme[V], value V) (Extreme[V], error) {
	if !acc.Valid || e.keepLeft(value, acc.Value) {
		return Extreme[V]{Valid: true, Value: value}, nil
	}
	return acc, nil
}

func (e extremeFn[K, V]) MergeAccumulators(_ context.Context, _ K, a, b Extreme[V]) (Extreme[V], error) {
	switch {
	case !a.Valid:
		return b, nil
	case !b.Valid:
		return a, nil
	case e.keepLeft(a.Value, b.Value):
		return a, nil
	default:
		return b, nil
	}
}

// MeanAccumulator carries the running sum and count of Mean.
type MeanAccumulator struct {
	Sum   float64
	Count int64
}

// Mean returns Sum/Count, or 0 for an empty accumulator.
func (a MeanAccumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Mean averages the values of a window.
func Mean[K comparable, V Number]() CombineFn[K, V, MeanAccumulator] {
	return meanFn[K, V]{}
}

type meanFn[K comparable, V Number] struct{}

func (meanFn[K, V]) CreateAccumulator(_ context.Context, _ K) (MeanAccumulator, error) {
	return MeanAccumulator{}, nil
}

func (meanFn[K, V]) AddInput(_ context.Context, _ K, acc MeanAccumulator, value V) (MeanAccumulator, error) {
	return MeanAccumulator{Sum: acc.Sum + float64(value), Count: acc.Count + 1}, nil
}

func (meanFn[K, V]) MergeAccumulators(_ context.Context, _ K, a, b MeanAccumulator) (MeanAccumulator, error) {
	return MeanAccumulator{Sum: a.Sum + b.Sum, Count: a.Count + b.Count}, nil
}

// Collect gathers the values of a window in encounter order. Mostly useful in
// tests that need to see exactly which inputs fed an accumulator.
func Collect[K comparable, V any]() CombineFn[K, V, []V] {
	return collectFn[K, V]{}
}

type collectFn[K comparable, V any] struct{}

func (collectFn[K, V]) CreateAccumulator(_ context.Context, _ K) ([]V, error) {
	return nil, nil
}

func (collectFn[K, V]) AddInput(_ context.Context, _ K, acc []V, value V) ([]V, error) {
	return append(acc, value), nil
}

func (collectFn[K, V]) MergeAccumulators(_ context.Context, _ K, a, b []V) ([]V, error) {
	return append(a, b...), nil
}
