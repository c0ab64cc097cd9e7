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

// Package generator produces synthetic keyed records for simulations and
// benchmarks. The stream is deterministic for a given seed, spread over a
// configurable event-time span, and arrives out of order within a jitter
// bound, which is what makes it useful for exercising window consolidation.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

type Generator struct {
	recordCount int
	keyCount    int
	keyPrefix   string
	baseTime    time.Time
	// spread is the event-time span the records cover before jitter.
	spread time.Duration
	// jitter shifts each event time by a uniform offset in [-jitter, jitter],
	// producing out-of-order arrivals.
	jitter   time.Duration
	valueMax float64
	seed     int64
	assigner window.Assigner
}

type Option func(*Generator) error

// WithKeyPrefix sets the prefix of the generated keys.
func WithKeyPrefix(prefix string) Option {
	return func(g *Generator) error {
		if prefix == "" {
			return fmt.Errorf("key prefix must not be empty")
		}
		g.keyPrefix = prefix
		return nil
	}
}

// WithBaseTime sets the event time of the first record.
func WithBaseTime(t time.Time) Option {
	return func(g *Generator) error {
		g.baseTime = t
		return nil
	}
}

// WithJitter sets the max out-of-order shift applied to each event time.
func WithJitter(d time.Duration) Option {
	return func(g *Generator) error {
		if d < 0 {
			return fmt.Errorf("invalid jitter %v", d)
		}
		g.jitter = d
		return nil
	}
}

// WithValueMax sets the upper bound of the uniform record values.
func WithValueMax(max float64) Option {
	return func(g *Generator) error {
		if max <= 0 {
			return fmt.Errorf("invalid value bound %v", max)
		}
		g.valueMax = max
		return nil
	}
}

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) error {
		g.seed = seed
		return nil
	}
}

// NewGenerator returns a generator for recordCount records across keyCount
// keys, with event times spread over the given span and windows assigned by
// the given assigner.
func NewGenerator(recordCount, keyCount int, spread time.Duration, assigner window.Assigner, opts ...Option) (*Generator, error) {
	if recordCount < 1 {
		return nil, fmt.Errorf("invalid record count %d", recordCount)
	}
	if keyCount < 1 {
		return nil, fmt.Errorf("invalid key count %d", keyCount)
	}
	if spread < 0 {
		return nil, fmt.Errorf("invalid spread %v", spread)
	}
	if assigner == nil {
		return nil, fmt.Errorf("assigner must not be nil")
	}
	g := &Generator{
		recordCount: recordCount,
		keyCount:    keyCount,
		keyPrefix:   "key",
		baseTime:    time.Now().Add(-spread),
		spread:      spread,
		valueMax:    100,
		seed:        time.Now().UnixNano(),
		assigner:    assigner,
	}
	for _, o := range opts {
		if err := o(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Records materializes the whole synthetic stream.
func (g *Generator) Records() []stream.Record[string, float64] {
	rng := rand.New(rand.NewSource(g.seed))
	step := time.Duration(0)
	if g.recordCount > 1 {
		step = g.spread / time.Duration(g.recordCount-1)
	}
	records := make([]stream.Record[string, float64], 0, g.recordCount)
	for i := 0; i < g.recordCount; i++ {
		eventTime := g.baseTime.Add(time.Duration(i) * step)
		if g.jitter > 0 {
			shift := time.Duration(rng.Int63n(int64(2*g.jitter))) - g.jitter
			eventTime = eventTime.Add(shift)
		}
		records = append(records, stream.Record[string, float64]{
			Key:       fmt.Sprintf("%s-%d", g.keyPrefix, rng.Intn(g.keyCount)),
			Value:     rng.Float64() * g.valueMax,
			EventTime: eventTime,
			Windows:   g.assigner.AssignWindows(eventTime),
			Pane:      stream.NoFiringPane,
		})
	}
	return records
}
