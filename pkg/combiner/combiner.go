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

// Package combiner defines the user supplied combine function a windowed
// aggregation runs, plus a handful of builtin combiners.
package combiner

import "context"

// CombineFn is an aggregation split into an accumulator lifecycle so that it
// can be applied incrementally. A pre-aggregating stage only ever creates
// accumulators and adds inputs to them, MergeAccumulators is what a later
// stage uses to fold the partial accumulators of one window into the final
// value.
//
// Errors returned from any method abort the aggregation of the group and are
// handed back to the caller unmodified.
type CombineFn[K comparable, V, A any] interface {
	// CreateAccumulator returns a fresh empty accumulator for the key.
	CreateAccumulator(ctx context.Context, key K) (A, error)
	// AddInput folds one input value into the accumulator and returns the
	// updated accumulator.
	AddInput(ctx context.Context, key K, acc A, value V) (A, error)
	// MergeAccumulators combines two partial accumulators of the same key
	// and window into one.
	MergeAccumulators(ctx context.Context, key K, a, b A) (A, error)
}

// Funcs is a utility to build a CombineFn implementation from plain
// functions. A nil Merge is allowed for combiners that never leave the
// pre-aggregation stage, calling MergeAccumulators on it panics.
type Funcs[K comparable, V, A any] struct {
	Create func(ctx context.Context, key K) (A, error)
	Add    func(ctx context.Context, key K, acc A, value V) (A, error)
	Merge  func(ctx context.Context, key K, a, b A) (A, error)
}

var _ CombineFn[string, int, int] = Funcs[string, int, int]{}

func (f Funcs[K, V, A]) CreateAccumulator(ctx context.Context, key K) (A, error) {
	return f.Create(ctx, key)
}

func (f Funcs[K, V, A]) AddInput(ctx context.Context, key K, acc A, value V) (A, error) {
	return f.Add(ctx, key, acc, value)
}

func (f Funcs[K, V, A]) MergeAccumulators(ctx context.Context, key K, a, b A) (A, error) {
	return f.Merge(ctx, key, a, b)
}
