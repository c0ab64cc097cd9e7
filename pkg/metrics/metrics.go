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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Shared label names. Every windrow metric is labeled with the pipeline and
// vertex it is measured for so that multiple reduce stages can share one
// registry.
const (
	LabelVersion   = "version"
	LabelPlatform  = "platform"
	LabelComponent = "component"
	LabelPipeline  = "pipeline"
	LabelVertex    = "vertex"
	LabelPartition = "partition"
	LabelReason    = "reason"
)

var (
	// BuildInfo provides the windrow binary build information, with a constant
	// value '1'.
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "A metric with a constant value '1', labeled by windrow binary version, platform, and other information",
	}, []string{LabelComponent, LabelVersion, LabelPlatform})
)
