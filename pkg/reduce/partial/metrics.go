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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/windrowlabs/windrow/pkg/metrics"
)

// groupsCount is a counter for the total number of groups reduced.
var groupsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "partial_reduce",
	Name:      "groups_total",
	Help:      "Total number of groups reduced",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// recordsCount is a counter for the total number of records aggregated, after
// exploding multi-window records.
var recordsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "partial_reduce",
	Name:      "records_total",
	Help:      "Total number of records aggregated",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// windowsMergedCount is a counter for the total number of records whose
// window was widened while consolidating overlapping windows.
var windowsMergedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "partial_reduce",
	Name:      "windows_merged_total",
	Help:      "Total number of records rewritten to a consolidated window",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// resultsCount is a counter for the total number of partial results produced.
var resultsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "partial_reduce",
	Name:      "results_total",
	Help:      "Total number of partial results produced",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// groupProcessingTime is a histogram for the time taken to reduce one group.
var groupProcessingTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Subsystem: "partial_reduce",
	Name:      "group_processing_time",
	Help:      "Processing times of groups in Unit milliseconds",
	Buckets:   prometheus.ExponentialBucketsRange(1, 60000, 10),
}, []string{metrics.LabelPipeline, metrics.LabelVertex})
