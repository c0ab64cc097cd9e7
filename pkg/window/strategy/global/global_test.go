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

package global

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/windrowlabs/windrow/pkg/window"
)

func TestGlobal_AssignWindows(t *testing.T) {
	g := NewGlobal()

	early := g.AssignWindows(time.Unix(0, 0))
	late := g.AssignWindows(time.Unix(1651129201, 0))

	assert.Len(t, early, 1)
	assert.True(t, early[0].Equals(late[0]))
	assert.Equal(t, window.EndOfGlobalWindow, early[0].MaxTimestamp())
	assert.True(t, early[0].Contains(time.Unix(1651129201, 0)))
}

func TestGlobal_Metadata(t *testing.T) {
	g := NewGlobal()
	assert.Equal(t, window.Global, g.Strategy())
	assert.False(t, g.Merging())
}
