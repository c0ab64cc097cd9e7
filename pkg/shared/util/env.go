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

package util

import (
	"fmt"
	"os"
	"strconv"
)

// LookupEnvStringOr returns the value of the env variable if it is set and
// non-empty, otherwise the given default.
func LookupEnvStringOr(key, defaultValue string) string {
	if v, existing := os.LookupEnv(key); existing && v != "" {
		return v
	}
	return defaultValue
}

// LookupEnvIntOr is like LookupEnvStringOr for integer env variables. A set
// but unparsable value is a configuration bug and panics.
func LookupEnvIntOr(key string, defaultValue int) int {
	valStr, existing := os.LookupEnv(key)
	if !existing || valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		panic(fmt.Errorf("invalid value for env variable %q, value %q", key, valStr))
	}
	return val
}

// LookupEnvBoolOr is like LookupEnvStringOr for boolean env variables. A set
// but unparsable value is a configuration bug and panics.
func LookupEnvBoolOr(key string, defaultValue bool) bool {
	valStr, existing := os.LookupEnv(key)
	if !existing || valStr == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		panic(fmt.Errorf("invalid value for env variable %q, value %q", key, valStr))
	}
	return val
}
