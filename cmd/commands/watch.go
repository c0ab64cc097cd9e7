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

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/windrowlabs/windrow"
	"github.com/windrowlabs/windrow/pkg/combiner"
	"github.com/windrowlabs/windrow/pkg/metrics"
	"github.com/windrowlabs/windrow/pkg/reduce/partial"
	"github.com/windrowlabs/windrow/pkg/reduce/runner"
	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/sources/spool"
	"github.com/windrowlabs/windrow/pkg/window"
)

func NewWatchCommand() *cobra.Command {
	var (
		dir         string
		filterExpr  string
		windowType  string
		length      time.Duration
		slide       time.Duration
		gap         time.Duration
		agg         string
		outFile     string
		metricsPort int
		parallelism int
	)

	command := &cobra.Command{
		Use:   "watch",
		Short: "Watch a spool directory and reduce every batch dropped into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("watch")
			sctx, cancel := signalContext()
			defer cancel()
			ctx := logging.WithLogger(sctx, log)

			assigner, err := buildAssigner(windowType, length, slide, gap)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("failed to create the output file, %w", err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			v := windrow.GetVersion()
			metrics.BuildInfo.WithLabelValues("watch", v.Version, v.Platform).Set(1)
			metricsServer := metrics.NewMetricsServer(metrics.WithPort(metricsPort))
			shutdown, err := metricsServer.Start(ctx)
			if err != nil {
				return fmt.Errorf("failed to start the metrics server, %w", err)
			}
			defer func() {
				stopCtx, stopCancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer stopCancel()
				_ = shutdown(stopCtx)
			}()

			source, err := spool.NewSpoolSource(ctx, dir, assigner,
				spool.WithFilter(filterExpr), spool.WithPipelineName("watch"))
			if err != nil {
				return err
			}
			defer func() { _ = source.Close() }()
			log.Infow("Watching spool directory", zap.String("dir", dir), zap.String("window", windowType), zap.String("agg", agg))

			return watch(ctx, out, source, assigner.Merging(), agg, parallelism)
		},
	}
	command.Flags().StringVar(&dir, "dir", "", "Spool directory to watch")
	_ = command.MarkFlagRequired("dir")
	command.Flags().StringVar(&filterExpr, "filter", "", "Record filter expression, e.g. 'json(payload).value > 10.0'")
	command.Flags().StringVar(&windowType, "window", "fixed", "Window type, one of fixed|sliding|session|global")
	command.Flags().DurationVar(&length, "length", time.Minute, "Window length for fixed and sliding windows")
	command.Flags().DurationVar(&slide, "slide", 30*time.Second, "Slide for sliding windows")
	command.Flags().DurationVar(&gap, "gap", 30*time.Second, "Inactivity gap for session windows")
	command.Flags().StringVar(&agg, "agg", "sum", "Aggregation, one of sum|count|mean|min|max")
	command.Flags().StringVar(&outFile, "out", "", "Write results to this file instead of stdout")
	command.Flags().IntVar(&metricsPort, "metrics-port", metrics.DefaultPort, "Metrics server port")
	command.Flags().IntVar(&parallelism, "parallelism", 4, "Max concurrently reduced groups")
	return command
}

// resultLine is the JSON shape of one emitted partial result.
type resultLine struct {
	Batch       string      `json:"batch"`
	Key         string      `json:"key"`
	WindowStart time.Time   `json:"window_start"`
	WindowEnd   time.Time   `json:"window_end"`
	Time        time.Time   `json:"time"`
	Value       interface{} `json:"value"`
}

func watch(ctx context.Context, out io.Writer, source *spool.SpoolSource, merging bool, agg string, parallelism int) error {
	switch agg {
	case "sum":
		return watchWith(ctx, out, source, merging, combiner.Sum[string, float64](), parallelism, func(a float64) interface{} { return a })
	case "count":
		return watchWith(ctx, out, source, merging, combiner.Count[string, float64](), parallelism, func(a int64) interface{} { return a })
	case "mean":
		return watchWith(ctx, out, source, merging, combiner.Mean[string, float64](), parallelism, func(a combiner.MeanAccumulator) interface{} { return a.Mean() })
	case "min":
		return watchWith(ctx, out, source, merging, combiner.Min[string, float64](), parallelism, extremeValue)
	case "max":
		return watchWith(ctx, out, source, merging, combiner.Max[string, float64](), parallelism, extremeValue)
	default:
		return fmt.Errorf("unsupported aggregation %q", agg)
	}
}

// watchWith reduces every batch from the source and writes one JSON line per
// partial result, until the source closes or the context is cancelled.
func watchWith[A any](ctx context.Context, out io.Writer, source *spool.SpoolSource, merging bool, fn combiner.CombineFn[string, float64, A], parallelism int, value func(A) interface{}) error {
	log := logging.FromContext(ctx)
	popts := []partial.Option{partial.WithPipelineName("watch"), partial.WithVertexName("partial-reduce")}
	var (
		reducer partial.Reducer[string, float64, A]
		err     error
	)
	if merging {
		reducer, err = partial.NewMergingReducer(fn, window.OutputAtEndOfWindow(), popts...)
	} else {
		reducer, err = partial.NewReducer(fn, window.OutputAtEndOfWindow(), popts...)
	}
	if err != nil {
		return err
	}
	run, err := runner.NewRunner(reducer, runner.WithParallelism(parallelism), runner.WithPipelineName("watch"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-source.Batches():
			if !ok {
				return nil
			}
			groups := runner.GroupByKey(batch.Records)
			results, err := run.Run(ctx, groups)
			if err != nil {
				// reduce failures are batch-local, keep watching
				log.Errorw("Failed to reduce batch", zap.String("batch", batch.Name), zap.Error(err))
			}
			for _, gr := range results {
				for _, rec := range gr.Results {
					w := rec.Window()
					line := resultLine{
						Batch:       batch.Name,
						Key:         rec.Key,
						WindowStart: w.Start,
						WindowEnd:   w.End,
						Time:        rec.EventTime,
						Value:       value(rec.Value),
					}
					if err := enc.Encode(line); err != nil {
						return fmt.Errorf("failed to write a result line, %w", err)
					}
				}
			}
			log.Debugw("Reduced batch",
				zap.String("batch", batch.Name),
				zap.Int("groups", len(groups)),
				zap.Float64("smoothedReduceMillis", run.Stats().SmoothedReduceMillis))
		}
	}
}

func extremeValue(e combiner.Extreme[float64]) interface{} {
	if !e.Valid {
		return nil
	}
	return e.Value
}
