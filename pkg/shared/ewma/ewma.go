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

// Package ewma keeps exponentially weighted moving averages. The runner uses
// one to smooth per-group reduce latency, which jumps around too much raw to
// be worth reporting.
package ewma

// EWMA is a moving average that weighs recent samples heavier.
type EWMA interface {
	// Add folds a new sample into the average.
	Add(float64)
	// Get returns the current average.
	Get() float64
	// Reset forgets all samples.
	Reset()
	// Set overrides the current average.
	Set(float64)
}

const (
	defaultSpan = 30.0
	// defaultDecay is the decay factor of a span-30 average.
	defaultDecay = 2.0 / (defaultSpan + 1.0)
)

// SimpleEWMA averages with a fixed decay factor. Not safe for concurrent use.
type SimpleEWMA struct {
	decay float64
	value float64
	// init flips on the first Add, the first sample seeds the average as-is
	init bool
}

var _ EWMA = (*SimpleEWMA)(nil)

// NewSimpleEWMA returns an average decaying over the given span of samples,
// or over 30 samples when none is given.
func NewSimpleEWMA(span ...float64) *SimpleEWMA {
	if len(span) > 0 {
		return &SimpleEWMA{decay: 2.0 / (span[0] + 1.0)}
	}
	return &SimpleEWMA{decay: defaultDecay}
}

func (s *SimpleEWMA) Add(value float64) {
	if !s.init {
		s.value = value
		s.init = true
		return
	}
	s.value = s.value + s.decay*(value-s.value)
}

func (s *SimpleEWMA) Get() float64 {
	return s.value
}

func (s *SimpleEWMA) Reset() {
	s.value = 0
	s.init = false
}

func (s *SimpleEWMA) Set(value float64) {
	s.value = value
	s.init = true
}
