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

func TestInterval_MaxTimestamp(t *testing.T) {
	w := NewInterval(time.UnixMilli(60000), time.UnixMilli(120000))
	assert.Equal(t, time.UnixMilli(119999), w.MaxTimestamp())
}

func TestInterval_Intersects(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "partial_overlap",
			a:        NewInterval(time.UnixMilli(0), time.UnixMilli(10000)),
			b:        NewInterval(time.UnixMilli(5000), time.UnixMilli(15000)),
			expected: true,
		},
		{
			name:     "contained",
			a:        NewInterval(time.UnixMilli(0), time.UnixMilli(30000)),
			b:        NewInterval(time.UnixMilli(10000), time.UnixMilli(20000)),
			expected: true,
		},
		{
			name:     "touching_boundaries",
			a:        NewInterval(time.UnixMilli(0), time.UnixMilli(10000)),
			b:        NewInterval(time.UnixMilli(10000), time.UnixMilli(20000)),
			expected: false,
		},
		{
			name:     "disjoint",
			a:        NewInterval(time.UnixMilli(0), time.UnixMilli(10000)),
			b:        NewInterval(time.UnixMilli(20000), time.UnixMilli(30000)),
			expected: false,
		},
		{
			name:     "identical",
			a:        NewInterval(time.UnixMilli(0), time.UnixMilli(10000)),
			b:        NewInterval(time.UnixMilli(0), time.UnixMilli(10000)),
			expected: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.expected, tt.b.Intersects(tt.a))
		})
	}
}

func TestInterval_Span(t *testing.T) {
	a := NewInterval(time.UnixMilli(0), time.UnixMilli(10000))
	b := NewInterval(time.UnixMilli(5000), time.UnixMilli(15000))
	assert.Equal(t, NewInterval(time.UnixMilli(0), time.UnixMilli(15000)), a.Span(b))
	assert.Equal(t, NewInterval(time.UnixMilli(0), time.UnixMilli(15000)), b.Span(a))

	inner := NewInterval(time.UnixMilli(2000), time.UnixMilli(3000))
	assert.Equal(t, a, a.Span(inner))
}

func TestInterval_Equals(t *testing.T) {
	a := NewInterval(time.UnixMilli(0), time.UnixMilli(10000))
	b := NewInterval(time.UnixMilli(0).In(time.FixedZone("x", 3600)), time.UnixMilli(10000).In(time.FixedZone("x", 3600)))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewInterval(time.UnixMilli(0), time.UnixMilli(10001))))
}

func TestInterval_Contains(t *testing.T) {
	w := NewInterval(time.UnixMilli(60000), time.UnixMilli(120000))
	assert.True(t, w.Contains(time.UnixMilli(60000)))
	assert.True(t, w.Contains(time.UnixMilli(119999)))
	assert.False(t, w.Contains(time.UnixMilli(120000)))
	assert.False(t, w.Contains(time.UnixMilli(59999)))
}

func TestInterval_String(t *testing.T) {
	w := NewInterval(time.UnixMilli(60000), time.UnixMilli(120000))
	assert.Equal(t, "[60000:120000)", w.String())
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "Fixed", Fixed.String())
	assert.Equal(t, "Sliding", Sliding.String())
	assert.Equal(t, "Session", Session.String())
	assert.Equal(t, "Global", Global.String())
	assert.Equal(t, "Unknown", Strategy(0).String())
}
