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

package stream

// Timing says when in the lifecycle of its window a pane was produced,
// relative to the watermark.
type Timing int

const (
	// TimingUnknown marks a pane whose position relative to the watermark is
	// not determined, e.g. an intermediate result that no trigger produced.
	TimingUnknown Timing = iota
	TimingEarly
	TimingOnTime
	TimingLate
)

func (t Timing) String() string {
	switch t {
	case TimingEarly:
		return "EARLY"
	case TimingOnTime:
		return "ON_TIME"
	case TimingLate:
		return "LATE"
	default:
		return "UNKNOWN"
	}
}

// Pane describes one firing of a window. A stage that only pre-aggregates
// never fires windows itself, its output carries NoFiringPane.
type Pane struct {
	Timing  Timing
	IsFirst bool
	IsLast  bool
}

// NoFiringPane is the pane of a result that is not a trigger firing, i.e. an
// intermediate value a downstream merge still has to finalize.
var NoFiringPane = Pane{Timing: TimingUnknown, IsFirst: true, IsLast: true}

func (p Pane) String() string {
	return "PANE(" + p.Timing.String() + ")"
}
