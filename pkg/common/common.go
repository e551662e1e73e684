package common

import (
	"context"
	"strings"
)

func Contains[T comparable](elems []T, v T) bool {
	for _, s := range elems {
		if v == s {
			return true
		}
	}

	return false
}

// RemoveEmpty trims every element and drops the blank ones.
func RemoveEmpty(inputSlice []string) []string {
	newSlice := make([]string, 0, len(inputSlice))

	for _, v := range inputSlice {
		if v = strings.TrimSpace(v); v != "" {
			newSlice = append(newSlice, v)
		}
	}

	return newSlice
}

func IsContextDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
