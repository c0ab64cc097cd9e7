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
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Commands(t *testing.T) {

	t.Run("root execute", func(t *testing.T) {
		rootCmd.SetOut(io.Discard)
		rootCmd.SetArgs([]string{"help"})
		assert.NotPanics(t, Execute, "help")
	})

	t.Run("test root", func(t *testing.T) {
		b := bytes.NewBufferString("")
		rootCmd.SetOut(b)
		rootCmd.SetArgs([]string{"help"})
		Execute()
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "Available Commands")
		assert.Contains(t, string(output), "simulate")
		assert.Contains(t, string(output), "watch")
	})

	t.Run("Version", func(t *testing.T) {
		cmd := NewVersionCommand()
		assert.Equal(t, "version", cmd.Use)
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		err := cmd.Execute()
		assert.NoError(t, err)
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "Version:")
		assert.Contains(t, string(output), "GoVersion:")
	})

	t.Run("Simulate", func(t *testing.T) {
		cmd := NewSimulateCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "simulate", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("config").Value.Type())
		assert.Equal(t, "int", cmd.Flag("records").Value.Type())
		assert.Equal(t, "int", cmd.Flag("keys").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("spread").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("jitter").Value.Type())
		assert.Equal(t, "int64", cmd.Flag("seed").Value.Type())
		assert.Equal(t, "string", cmd.Flag("window").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("length").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("slide").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("gap").Value.Type())
		assert.Equal(t, "string", cmd.Flag("agg").Value.Type())
		assert.Equal(t, "string", cmd.Flag("output-time").Value.Type())
		assert.Equal(t, "int", cmd.Flag("partitions").Value.Type())
		assert.Equal(t, "int", cmd.Flag("parallelism").Value.Type())
	})

	t.Run("SimulateUnknownWindow", func(t *testing.T) {
		cmd := NewSimulateCommand()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{"--window=nonono"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported window type")
	})

	t.Run("SimulateUnknownAggregation", func(t *testing.T) {
		cmd := NewSimulateCommand()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{"--records=10", "--spread=10s", "--window=fixed", "--length=5s", "--agg=nonono"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported aggregation")
	})

	t.Run("SimulateSmallRun", func(t *testing.T) {
		cmd := NewSimulateCommand()
		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{
			"--records=50", "--keys=3", "--spread=1m", "--jitter=0s", "--seed=7",
			"--window=fixed", "--length=10s", "--agg=sum", "--partitions=2",
		})
		err := cmd.Execute()
		assert.NoError(t, err)
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "partition=")
		assert.Contains(t, string(output), "key=key-")
		assert.Contains(t, string(output), "reduce_ms mean=")
	})

	t.Run("Watch", func(t *testing.T) {
		cmd := NewWatchCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "watch", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("dir").Value.Type())
		assert.Equal(t, "string", cmd.Flag("filter").Value.Type())
		assert.Equal(t, "string", cmd.Flag("window").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("length").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("slide").Value.Type())
		assert.Equal(t, "duration", cmd.Flag("gap").Value.Type())
		assert.Equal(t, "string", cmd.Flag("agg").Value.Type())
		assert.Equal(t, "string", cmd.Flag("out").Value.Type())
		assert.Equal(t, "int", cmd.Flag("metrics-port").Value.Type())
		assert.Equal(t, "int", cmd.Flag("parallelism").Value.Type())
	})

	t.Run("WatchMissingDir", func(t *testing.T) {
		cmd := NewWatchCommand()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required flag(s) \"dir\" not set")
	})

	t.Run("WatchUnknownWindow", func(t *testing.T) {
		cmd := NewWatchCommand()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{"--dir=" + t.TempDir(), "--window=nonono"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported window type")
	})
}
