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

package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputAtEarliestInputTimestamp(t *testing.T) {
	fn := OutputAtEarliestInputTimestamp()
	w := NewInterval(time.UnixMilli(0), time.UnixMilli(60000))

	assert.Equal(t, time.UnixMilli(1234), fn.AssignOutputTime(time.UnixMilli(1234), w))
	assert.Equal(t, time.UnixMilli(100), fn.Combine(time.UnixMilli(100), time.UnixMilli(200)))
	assert.Equal(t, time.UnixMilli(100), fn.Combine(time.UnixMilli(200), time.UnixMilli(100)))
}

func TestOutputAtLatestInputTimestamp(t *testing.T) {
	fn := OutputAtLatestInputTimestamp()
	w := NewInterval(time.UnixMilli(0), time.UnixMilli(60000))

	assert.Equal(t, time.UnixMilli(1234), fn.AssignOutputTime(time.UnixMilli(1234), w))
	assert.Equal(t, time.UnixMilli(200), fn.Combine(time.UnixMilli(100), time.UnixMilli(200)))
	assert.Equal(t, time.UnixMilli(200), fn.Combine(time.UnixMilli(200), time.UnixMilli(100)))
}

func TestOutputAtEndOfWindow(t *testing.T) {
	fn := OutputAtEndOfWindow()
	w := NewInterval(time.UnixMilli(0), time.UnixMilli(60000))

	assert.Equal(t, time.UnixMilli(59999), fn.AssignOutputTime(time.UnixMilli(1234), w))
	assert.Equal(t, time.UnixMilli(59999), fn.Combine(time.UnixMilli(59999), time.UnixMilli(59999)))
}

// The fold order over a group is unspecified, so Combine must behave the same
// regardless of grouping.
func TestCombine_Associative(t *testing.T) {
	times := []time.Time{time.UnixMilli(300), time.UnixMilli(100), time.UnixMilli(200)}
	for _, fn := range []OutputTimeFn{OutputAtEarliestInputTimestamp(), OutputAtLatestInputTimestamp()} {
		left := fn.Combine(fn.Combine(times[0], times[1]), times[2])
		right := fn.Combine(times[0], fn.Combine(times[1], times[2]))
		assert.Equal(t, left, right)
	}
}
