package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupEnvStringOr(t *testing.T) {
	assert.Equal(t, "hello", LookupEnvStringOr("fake_env", "hello"))
	t.Setenv("WINDROW_TEST_STR", "x")
	assert.Equal(t, "x", LookupEnvStringOr("WINDROW_TEST_STR", "hello"))
}

func TestLookupEnvIntOr(t *testing.T) {
	assert.Equal(t, 7, LookupEnvIntOr("fake_env", 7))
	t.Setenv("WINDROW_TEST_INT", "42")
	assert.Equal(t, 42, LookupEnvIntOr("WINDROW_TEST_INT", 7))
	t.Setenv("WINDROW_TEST_INT", "abc")
	assert.Panics(t, func() { LookupEnvIntOr("WINDROW_TEST_INT", 7) })
}

func TestLookupEnvBoolOr(t *testing.T) {
	assert.True(t, LookupEnvBoolOr("fake_env", true))
	t.Setenv("WINDROW_TEST_BOOL", "false")
	assert.False(t, LookupEnvBoolOr("WINDROW_TEST_BOOL", true))
}
