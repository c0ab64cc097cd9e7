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

import "fmt"

const defaultParallelism = 4

// Options for the Runner.
type Options struct {
	// parallelism bounds the number of in-flight reduce invocations.
	parallelism int
	// pipelineName tags the runner's logs with the owning pipeline.
	pipelineName string
	// vertexName tags the runner's logs with the owning vertex.
	vertexName string
}

type Option func(*Options) error

func DefaultOptions() *Options {
	return &Options{
		parallelism:  defaultParallelism,
		pipelineName: "default",
		vertexName:   "partial-reduce",
	}
}

// WithParallelism sets the max number of concurrently reduced groups.
func WithParallelism(n int) Option {
	return func(o *Options) error {
		if n < 1 {
			return fmt.Errorf("invalid parallelism %d", n)
		}
		o.parallelism = n
		return nil
	}
}

// WithPipelineName sets the pipeline name reported in logs.
func WithPipelineName(name string) Option {
	return func(o *Options) error {
		o.pipelineName = name
		return nil
	}
}

// WithVertexName sets the vertex name reported in logs.
func WithVertexName(name string) Option {
	return func(o *Options) error {
		o.vertexName = name
		return nil
	}
}
