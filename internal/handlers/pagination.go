package handlers

import (
	"fmt"
	"strconv"
)

const (
	defaultPage  = int64(1)
	defaultLimit = int64(12)
	maxLimit     = int64(100)
)

// parsePaginationParams applies defaults and bounds. The limit cap keeps a
// single request from paging the whole collection into memory.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := defaultPage
	limit := defaultLimit

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, fmt.Errorf("limit must be a positive integer")
		}
		if l > maxLimit {
			l = maxLimit
		}
		limit = l
	}

	return page, limit, nil
}
