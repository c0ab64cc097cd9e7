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

package spool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/windrowlabs/windrow/pkg/metrics"
)

// filesRead is a counter for the total number of spool files ingested.
var filesRead = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "spool_source",
	Name:      "files_total",
	Help:      "Total number of spool files ingested",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// recordsRead is a counter for the total number of records emitted.
var recordsRead = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "spool_source",
	Name:      "records_total",
	Help:      "Total number of records emitted",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// recordsFiltered is a counter for the records dropped by the filter
// expression.
var recordsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "spool_source",
	Name:      "records_filtered_total",
	Help:      "Total number of records dropped by the filter expression",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})

// linesDiscarded is a counter for the lines dropped as malformed.
var linesDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "spool_source",
	Name:      "lines_discarded_total",
	Help:      "Total number of malformed lines discarded",
}, []string{metrics.LabelPipeline, metrics.LabelVertex})
