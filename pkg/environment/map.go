// Package environment provides utilities for assembling process environments.
package environment

import (
	"sort"
	"strings"
)

// ToMap converts an environment variable specification from a slice of
// "KEY=value" strings to a map with equivalent contents. Any entries not
// adhering to the specified format are ignored. Entries are processed in order,
// meaning that the last entry seen for a key will be what populates the map.
func ToMap(environment []string) map[string]string {
	result := make(map[string]string, len(environment))
	for _, specification := range environment {
		keyValue := strings.SplitN(specification, "=", 2)
		if len(keyValue) != 2 || keyValue[0] == "" {
			continue
		}
		result[keyValue[0]] = keyValue[1]
	}
	return result
}

// FromMap converts a map of environment variables into a slice of "KEY=value"
// strings, sorted by key.
func FromMap(environment map[string]string) []string {
	keys := make([]string, 0, len(environment))
	for key := range environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(environment))
	for _, key := range keys {
		result = append(result, key+"="+environment[key])
	}
	return result
}
