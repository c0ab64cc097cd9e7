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

// Package spool reads keyed records from a spool directory. Every *.jsonl
// file dropped into the directory becomes one batch; writers must write to a
// temporary name and rename into place so a file is complete when its create
// event fires. Files already present at start are drained first.
package spool

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/araddon/dateparse"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/windrowlabs/windrow/pkg/metrics"
	sharedexpr "github.com/windrowlabs/windrow/pkg/shared/expr"
	"github.com/windrowlabs/windrow/pkg/shared/logging"
	"github.com/windrowlabs/windrow/pkg/stream"
	"github.com/windrowlabs/windrow/pkg/window"
)

// Batch is the contents of one spool file.
type Batch struct {
	// Name is the spool file the batch was read from, without the directory.
	Name    string
	Records []stream.Record[string, float64]
}

// spoolLine is the wire shape of one record line.
type spoolLine struct {
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	EventTime string  `json:"event_time"`
}

// SpoolSource watches a directory and emits one Batch per spool file.
type SpoolSource struct {
	dir          string
	assigner     window.Assigner
	filter       string
	bufferSize   int
	pipelineName string
	vertexName   string

	batches chan Batch
	watcher *fsnotify.Watcher
	logger  *zap.SugaredLogger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type Option func(*SpoolSource) error

// WithFilter sets an expression evaluated against each raw line; records
// whose line does not evaluate to true are dropped.
func WithFilter(expression string) Option {
	return func(s *SpoolSource) error {
		s.filter = expression
		return nil
	}
}

// WithBufferSize sets the capacity of the batch channel.
func WithBufferSize(n int) Option {
	return func(s *SpoolSource) error {
		if n < 0 {
			return fmt.Errorf("invalid buffer size %d", n)
		}
		s.bufferSize = n
		return nil
	}
}

// WithPipelineName sets the pipeline name reported in metrics and logs.
func WithPipelineName(name string) Option {
	return func(s *SpoolSource) error {
		s.pipelineName = name
		return nil
	}
}

// WithVertexName sets the vertex name reported in metrics and logs.
func WithVertexName(name string) Option {
	return func(s *SpoolSource) error {
		s.vertexName = name
		return nil
	}
}

// NewSpoolSource starts watching dir and returns the source. The caller must
// call Close to release the watcher; the batch channel is closed when the
// source stops, on Close or when ctx is cancelled.
func NewSpoolSource(ctx context.Context, dir string, assigner window.Assigner, opts ...Option) (*SpoolSource, error) {
	if assigner == nil {
		return nil, fmt.Errorf("assigner must not be nil")
	}
	s := &SpoolSource{
		dir:          dir,
		assigner:     assigner,
		bufferSize:   16,
		pipelineName: "default",
		vertexName:   "spool-source",
		done:         make(chan struct{}),
	}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.logger = logging.FromContext(ctx).With("pipeline", s.pipelineName, "vertex", s.vertexName)
	s.batches = make(chan Batch, s.bufferSize)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create the spool watcher, %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %q, %w", dir, err)
	}
	s.watcher = watcher

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
	return s, nil
}

// Batches returns the channel the source emits on.
func (s *SpoolSource) Batches() <-chan Batch {
	return s.batches
}

// Close stops the watcher and waits for the source to wind down. Safe to call
// more than once.
func (s *SpoolSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
	})
	return err
}

func (s *SpoolSource) run(ctx context.Context) {
	defer close(s.batches)

	if !s.drainExisting(ctx) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("Spool source exiting", zap.Error(ctx.Err()))
			return
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) || filepath.Ext(event.Name) != ".jsonl" {
				continue
			}
			if !s.ingest(ctx, event.Name) {
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Errorw("Spool watcher error", zap.Error(err))
		}
	}
}

// drainExisting ingests the spool files already present, in name order.
// Returns false when the source should stop.
func (s *SpoolSource) drainExisting(ctx context.Context) bool {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Errorw("Failed to list the spool directory", zap.String("dir", s.dir), zap.Error(err))
		return true
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		if !s.ingest(ctx, filepath.Join(s.dir, entry.Name())) {
			return false
		}
	}
	return true
}

// ingest reads one spool file and emits its batch. Returns false when the
// source should stop.
func (s *SpoolSource) ingest(ctx context.Context, path string) bool {
	records, err := s.readFile(path)
	if err != nil {
		s.logger.Errorw("Failed to read spool file", zap.String("file", path), zap.Error(err))
		return true
	}
	filesRead.With(s.metricLabels()).Inc()
	if len(records) == 0 {
		s.logger.Warnw("Skipping spool file with no usable records", zap.String("file", path))
		return true
	}
	recordsRead.With(s.metricLabels()).Add(float64(len(records)))

	batch := Batch{Name: filepath.Base(path), Records: records}
	select {
	case s.batches <- batch:
		s.logger.Debugw("Emitted batch", zap.String("file", batch.Name), zap.Int("records", len(records)))
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}

func (s *SpoolSource) readFile(path string) ([]stream.Record[string, float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var records []stream.Record[string, float64]
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if s.filter != "" {
			keep, err := sharedexpr.EvalBool(s.filter, line)
			if err != nil {
				s.logger.Warnw("Discarding line failing the filter expression", zap.String("file", path), zap.Error(err))
				linesDiscarded.With(s.metricLabels()).Inc()
				continue
			}
			if !keep {
				recordsFiltered.With(s.metricLabels()).Inc()
				continue
			}
		}
		var sl spoolLine
		if err := json.Unmarshal(line, &sl); err != nil {
			s.logger.Warnw("Discarding malformed line", zap.String("file", path), zap.Error(err))
			linesDiscarded.With(s.metricLabels()).Inc()
			continue
		}
		if sl.Key == "" {
			s.logger.Warnw("Discarding line without a key", zap.String("file", path))
			linesDiscarded.With(s.metricLabels()).Inc()
			continue
		}
		eventTime, err := dateparse.ParseAny(sl.EventTime)
		if err != nil {
			s.logger.Warnw("Discarding line with an unparsable event time", zap.String("file", path), zap.String("eventTime", sl.EventTime), zap.Error(err))
			linesDiscarded.With(s.metricLabels()).Inc()
			continue
		}
		records = append(records, stream.Record[string, float64]{
			Key:       sl.Key,
			Value:     sl.Value,
			EventTime: eventTime,
			Windows:   s.assigner.AssignWindows(eventTime),
			Pane:      stream.NoFiringPane,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SpoolSource) metricLabels() map[string]string {
	return map[string]string{
		metrics.LabelPipeline: s.pipelineName,
		metrics.LabelVertex:   s.vertexName,
	}
}
