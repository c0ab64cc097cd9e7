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

// Package sliding implements Sliding windows. Sliding windows are defined by a static window size
// e.g. minutely windows or hourly windows and a fixed "slide". This is the duration by which the boundaries
// of the windows move once every <slide> duration of time. The windows of one key overlap, so a single event
// belongs to ceil(length/slide) windows at once.
package sliding

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Sliding implements the sliding window assigner.
type Sliding struct {
	// length is the temporal length of the window.
	length time.Duration
	// slide is the duration by which the boundaries of a window move.
	slide time.Duration
	// assignments keyed by the slide bucket of the event time. Only usable
	// when length is a multiple of slide, otherwise events within one bucket
	// do not share the same window set.
	cache *lru.Cache[int64, []window.Interval]
}

var _ window.Assigner = (*Sliding)(nil)

type options struct {
	cacheSize int
}

type Option func(*options)

// WithAssignmentCache caches window assignments per slide bucket. The cache is
// only engaged when the window length is a multiple of the slide.
func WithAssignmentCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// NewSliding returns a Sliding window assigner.
func NewSliding(length, slide time.Duration, opts ...Option) *Sliding {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	s := &Sliding{
		length: length,
		slide:  slide,
	}
	if o.cacheSize > 0 && length.Milliseconds()%slide.Milliseconds() == 0 {
		cache, err := lru.New[int64, []window.Interval](o.cacheSize)
		if err != nil {
			panic(err)
		}
		s.cache = cache
	}
	return s
}

func (*Sliding) Strategy() window.Strategy {
	return window.Sliding
}

func (*Sliding) Merging() bool {
	return false
}

// AssignWindows returns the set of windows that contain the element based on
// event time. Callers own the returned slice.
func (s *Sliding) AssignWindows(eventTime time.Time) []window.Interval {
	// use the highest integer multiple of slide length which is not after the
	// eventTime as the start time for the rightmost window. For example if the
	// eventTime is 810 and slide length is 70, use 770 as the startTime of the
	// window. In that way we can guarantee consistency while assigning the
	// elements to the windows.
	bucket := (eventTime.UnixMilli() / s.slide.Milliseconds()) * s.slide.Milliseconds()

	if s.cache != nil {
		if cached, ok := s.cache.Get(bucket); ok {
			return append([]window.Interval(nil), cached...)
		}
	}

	windows := s.assign(eventTime, bucket)

	if s.cache != nil {
		s.cache.Add(bucket, append([]window.Interval(nil), windows...))
	}
	return windows
}

func (s *Sliding) assign(eventTime time.Time, bucket int64) []window.Interval {
	windows := make([]window.Interval, 0, (s.length.Milliseconds()+s.slide.Milliseconds()-1)/s.slide.Milliseconds())

	startTime := time.UnixMilli(bucket)
	endTime := startTime.Add(s.length)

	// startTime and endTime will be the largest timestamp window for the given
	// eventTime, using that we can create the other windows by subtracting the
	// slide length.

	// since there is overlap at the boundaries we attribute the element to the
	// window to the right (higher) of the boundary, left inclusive and right
	// exclusive. So given windows 500-600 and 600-700 and the event time is
	// 600, the element belongs to the 600-700 window and not the 500-600 one.
	for !startTime.After(eventTime) && endTime.After(eventTime) {
		windows = append(windows, window.NewInterval(startTime, endTime))
		startTime = startTime.Add(-s.slide)
		endTime = endTime.Add(-s.slide)
	}
	return windows
}
