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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/windrowlabs/windrow/pkg/combiner"
	"github.com/windrowlabs/windrow/pkg/reduce/partial"
	"github.com/windrowlabs/windrow/pkg/reduce/runner"
	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/shuffle"
	"github.com/windrowlabs/windrow/pkg/sources/generator"
	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

func NewSimulateCommand() *cobra.Command {
	var (
		configFile  string
		records     int
		keys        int
		spread      time.Duration
		jitter      time.Duration
		seed        int64
		windowType  string
		length      time.Duration
		slide       time.Duration
		gap         time.Duration
		agg         string
		outputTime  string
		partitions  int
		parallelism int
	)

	command := &cobra.Command{
		Use:   "simulate",
		Short: "Reduce a synthetic record stream and report per-window results",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("simulate")
			sctx, cancel := signalContext()
			defer cancel()
			ctx := logging.WithLogger(sctx, log)

			// flag < WINDROW_* env < explicit flag; the config file fills the
			// gaps in between.
			v := viper.New()
			v.SetEnvPrefix("windrow")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to load configuration file, %w", err)
				}
			}
			records = v.GetInt("records")
			keys = v.GetInt("keys")
			spread = v.GetDuration("spread")
			jitter = v.GetDuration("jitter")
			seed = v.GetInt64("seed")
			windowType = v.GetString("window")
			length = v.GetDuration("length")
			slide = v.GetDuration("slide")
			gap = v.GetDuration("gap")
			agg = v.GetString("agg")
			outputTime = v.GetString("output-time")
			partitions = v.GetInt("partitions")
			parallelism = v.GetInt("parallelism")

			assigner, err := buildAssigner(windowType, length, slide, gap)
			if err != nil {
				return err
			}
			outputTimeFn, err := buildOutputTime(outputTime)
			if err != nil {
				return err
			}
			if partitions < 1 {
				return fmt.Errorf("invalid partition count %d", partitions)
			}

			gen, err := generator.NewGenerator(records, keys, spread, assigner,
				generator.WithJitter(jitter), generator.WithSeed(seed))
			if err != nil {
				return err
			}
			input := gen.Records()
			log.Infow("Generated synthetic stream", zap.Int("records", len(input)), zap.String("window", windowType), zap.String("agg", agg))

			return simulate(ctx, cmd, input, assigner.Merging(), agg, outputTimeFn, partitions, parallelism)
		},
	}
	command.Flags().StringVar(&configFile, "config", "", "Path to an optional YAML configuration file")
	command.Flags().IntVar(&records, "records", 10000, "Number of synthetic records to generate")
	command.Flags().IntVar(&keys, "keys", 10, "Number of distinct keys")
	command.Flags().DurationVar(&spread, "spread", 10*time.Minute, "Event-time span covered by the stream")
	command.Flags().DurationVar(&jitter, "jitter", 30*time.Second, "Max out-of-order event-time shift")
	command.Flags().Int64Var(&seed, "seed", 42, "Random seed, for reproducible runs")
	command.Flags().StringVar(&windowType, "window", "session", "Window type, one of fixed|sliding|session|global")
	command.Flags().DurationVar(&length, "length", time.Minute, "Window length for fixed and sliding windows")
	command.Flags().DurationVar(&slide, "slide", 30*time.Second, "Slide for sliding windows")
	command.Flags().DurationVar(&gap, "gap", 30*time.Second, "Inactivity gap for session windows")
	command.Flags().StringVar(&agg, "agg", "sum", "Aggregation, one of sum|count|mean|min|max")
	command.Flags().StringVar(&outputTime, "output-time", "end", "Result timestamp rule, one of earliest|latest|end")
	command.Flags().IntVar(&partitions, "partitions", 4, "Number of shuffle partitions")
	command.Flags().IntVar(&parallelism, "parallelism", 4, "Max concurrently reduced groups")
	return command
}

func simulate(ctx context.Context, cmd *cobra.Command, input []stream.Record[string, float64], merging bool, agg string, outputTime window.OutputTimeFn, partitions, parallelism int) error {
	switch agg {
	case "sum":
		return reduceAndReport(ctx, cmd, input, merging, combiner.Sum[string, float64](), outputTime, partitions, parallelism, formatFloat)
	case "count":
		return reduceAndReport(ctx, cmd, input, merging, combiner.Count[string, float64](), outputTime, partitions, parallelism, func(a int64) string {
			return strconv.FormatInt(a, 10)
		})
	case "mean":
		return reduceAndReport(ctx, cmd, input, merging, combiner.Mean[string, float64](), outputTime, partitions, parallelism, func(a combiner.MeanAccumulator) string {
			return formatFloat(a.Mean())
		})
	case "min":
		return reduceAndReport(ctx, cmd, input, merging, combiner.Min[string, float64](), outputTime, partitions, parallelism, formatExtreme)
	case "max":
		return reduceAndReport(ctx, cmd, input, merging, combiner.Max[string, float64](), outputTime, partitions, parallelism, formatExtreme)
	default:
		return fmt.Errorf("unsupported aggregation %q", agg)
	}
}

// reduceAndReport shuffles the stream into partitions, reduces every key
// group and prints the partial results plus a latency report.
func reduceAndReport[A any](ctx context.Context, cmd *cobra.Command, input []stream.Record[string, float64], merging bool, fn combiner.CombineFn[string, float64, A], outputTime window.OutputTimeFn, partitions, parallelism int, format func(A) string) error {
	popts := []partial.Option{partial.WithPipelineName("simulate"), partial.WithVertexName("partial-reduce")}
	var (
		reducer partial.Reducer[string, float64, A]
		err     error
	)
	if merging {
		reducer, err = partial.NewMergingReducer(fn, outputTime, popts...)
	} else {
		reducer, err = partial.NewReducer(fn, outputTime, popts...)
	}
	if err != nil {
		return err
	}
	run, err := runner.NewRunner(reducer, runner.WithParallelism(parallelism), runner.WithPipelineName("simulate"))
	if err != nil {
		return err
	}

	byPartition := shuffle.NewShuffle[float64](partitions).ShuffleRecords(input)
	out := cmd.OutOrStdout()
	latencies := make([]float64, 0)
	groupCount := 0
	resultCount := 0
	for p := 0; p < partitions; p++ {
		groups := runner.GroupByKey(byPartition[p])
		if len(groups) == 0 {
			continue
		}
		groupCount += len(groups)
		results, err := run.Run(ctx, groups)
		if err != nil {
			return err
		}
		for _, gr := range results {
			latencies = append(latencies, float64(gr.Elapsed.Nanoseconds())/1e6)
			for _, rec := range gr.Results {
				resultCount++
				fmt.Fprintf(out, "partition=%d key=%s window=%s time=%s value=%s\n",
					p, rec.Key, rec.Window(), rec.EventTime.UTC().Format(time.RFC3339Nano), format(rec.Value))
			}
		}
	}
	return printLatencyReport(out, groupCount, resultCount, latencies)
}

func printLatencyReport(out io.Writer, groups, results int, latencies []float64) error {
	if len(latencies) == 0 {
		fmt.Fprintln(out, "no groups reduced")
		return nil
	}
	mean, err := stats.Mean(latencies)
	if err != nil {
		return err
	}
	// percentiles need at least two samples
	if len(latencies) < 2 {
		fmt.Fprintf(out, "groups=%d results=%d reduce_ms mean=%.3f\n", groups, results, mean)
		return nil
	}
	p50, err := stats.Percentile(latencies, 50)
	if err != nil {
		return err
	}
	p90, err := stats.Percentile(latencies, 90)
	if err != nil {
		return err
	}
	p99, err := stats.Percentile(latencies, 99)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "groups=%d results=%d reduce_ms mean=%.3f p50=%.3f p90=%.3f p99=%.3f\n",
		groups, results, mean, p50, p90, p99)
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func formatExtreme(e combiner.Extreme[float64]) string {
	if !e.Valid {
		return "n/a"
	}
	return formatFloat(e.Value)
}
