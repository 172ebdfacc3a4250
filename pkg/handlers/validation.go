package handlers

import (
	"errors"
	"strconv"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

var ErrInvalidLimit = errors.New("limit must be a positive integer")

// parseLimit validates and parses a list limit query parameter, applying the
// default when absent and capping oversized values.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultListLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, ErrInvalidLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}
