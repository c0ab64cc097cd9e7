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
)

func BenchmarkSliding_AssignWindows(b *testing.B) {
	assignWindowsHelper(b, NewSliding(10*time.Minute, time.Minute))
	b.ReportAllocs()
}

func BenchmarkSliding_AssignWindowsCached(b *testing.B) {
	assignWindowsHelper(b, NewSliding(10*time.Minute, time.Minute, WithAssignmentCache(128)))
	b.ReportAllocs()
}

func assignWindowsHelper(b *testing.B, s *Sliding) {
	b.Helper()
	eventTime := time.Unix(60, 0)
	for i := 0; i < b.N; i++ {
		_ = s.AssignWindows(eventTime)
		eventTime = eventTime.Add(time.Second)
	}
}
