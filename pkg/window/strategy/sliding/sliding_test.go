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

package sliding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/windrowlabs/windrow/pkg/window"
)

// Windows are produced rightmost first, the walk starts at the highest slide
// multiple not after the event time and steps back one slide at a time.
func TestSliding_AssignWindows(t *testing.T) {
	baseTime := time.Unix(600, 0)

	tests := []struct {
		name      string
		length    time.Duration
		slide     time.Duration
		eventTime time.Time
		expected  []window.Interval
	}{
		{
			name:      "slide_divides_length",
			length:    time.Minute,
			slide:     20 * time.Second,
			eventTime: baseTime.Add(10 * time.Second),
			expected: []window.Interval{
				window.NewInterval(time.Unix(600, 0), time.Unix(660, 0)),
				window.NewInterval(time.Unix(580, 0), time.Unix(640, 0)),
				window.NewInterval(time.Unix(560, 0), time.Unix(620, 0)),
			},
		},
		{
			name:      "element_eq_window_start",
			length:    time.Minute,
			slide:     20 * time.Second,
			eventTime: baseTime,
			expected: []window.Interval{
				window.NewInterval(time.Unix(600, 0), time.Unix(660, 0)),
				window.NewInterval(time.Unix(580, 0), time.Unix(640, 0)),
				window.NewInterval(time.Unix(560, 0), time.Unix(620, 0)),
			},
		},
		{
			name:      "length_not_divisible_by_slide",
			length:    25 * time.Second,
			slide:     10 * time.Second,
			eventTime: time.Unix(101, 0),
			expected: []window.Interval{
				window.NewInterval(time.Unix(100, 0), time.Unix(125, 0)),
				window.NewInterval(time.Unix(90, 0), time.Unix(115, 0)),
				window.NewInterval(time.Unix(80, 0), time.Unix(105, 0)),
			},
		},
		{
			name:      "length_not_divisible_by_slide_later_event",
			length:    25 * time.Second,
			slide:     10 * time.Second,
			eventTime: time.Unix(107, 0),
			expected: []window.Interval{
				window.NewInterval(time.Unix(100, 0), time.Unix(125, 0)),
				window.NewInterval(time.Unix(90, 0), time.Unix(115, 0)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSliding(tt.length, tt.slide)
			got := s.AssignWindows(tt.eventTime)
			assert.Equal(t, len(tt.expected), len(got))
			for i := range tt.expected {
				assert.True(t, got[i].Equals(tt.expected[i]), "window %d = %v, want %v", i, got[i], tt.expected[i])
			}
		})
	}
}

func TestSliding_AssignmentCache(t *testing.T) {
	s := NewSliding(time.Minute, 10*time.Second, WithAssignmentCache(16))
	assert.NotNil(t, s.cache)

	first := s.AssignWindows(time.Unix(605, 0))
	second := s.AssignWindows(time.Unix(609, 0))
	assert.Equal(t, first, second)

	// callers own the returned slice
	first[0] = window.NewInterval(time.Unix(0, 0), time.Unix(1, 0))
	third := s.AssignWindows(time.Unix(605, 0))
	assert.Equal(t, second, third)
}

func TestSliding_CacheSkippedForUnalignedLength(t *testing.T) {
	s := NewSliding(25*time.Second, 10*time.Second, WithAssignmentCache(16))
	assert.Nil(t, s.cache)

	// events within the same slide bucket get different window sets
	assert.Len(t, s.AssignWindows(time.Unix(101, 0)), 3)
	assert.Len(t, s.AssignWindows(time.Unix(107, 0)), 2)
}

func TestSliding_Metadata(t *testing.T) {
	s := NewSliding(time.Minute, 10*time.Second)
	assert.Equal(t, window.Sliding, s.Strategy())
	assert.False(t, s.Merging())
}
