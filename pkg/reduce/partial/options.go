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

import "fmt"

// Options for the partial reducer.
type Options struct {
	// pipelineName tags the reducer's metrics with the owning pipeline.
	pipelineName string
	// vertexName tags the reducer's metrics with the owning vertex.
	vertexName string
	// resultCapacityHint pre-sizes the result slice for callers that know
	// roughly how many distinct windows a group produces.
	resultCapacityHint int
}

type Option func(*Options) error

func DefaultOptions() *Options {
	return &Options{
		pipelineName: "default",
		vertexName:   "partial-reduce",
	}
}

// WithPipelineName sets the pipeline name reported in metrics.
func WithPipelineName(name string) Option {
	return func(o *Options) error {
		o.pipelineName = name
		return nil
	}
}

// WithVertexName sets the vertex name reported in metrics.
func WithVertexName(name string) Option {
	return func(o *Options) error {
		o.vertexName = name
		return nil
	}
}

// WithResultCapacityHint sets the expected number of results per group.
func WithResultCapacityHint(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			return fmt.Errorf("invalid result capacity hint %d", n)
		}
		o.resultCapacityHint = n
		return nil
	}
}
