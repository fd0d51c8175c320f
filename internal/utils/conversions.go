package utils

import (
	"strconv"
	"strings"
)

// ToFloat coerces a form field to a number. Unparseable input yields 0
// rather than an error so a half-typed value never blocks a draft edit.
func ToFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// ToInt coerces a form field to an integer, defaulting to 0 on failure.
func ToInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return int(ToFloat(s))
	}
	return n
}

// ToBool accepts the usual truthy spellings; anything else is false.
func ToBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}
