package helpers

import (
	"net/http"
	"strconv"

	"neurobiomark/internal/domain"
)

// DefaultPage is used when the page query parameter is missing or invalid.
const DefaultPage = 1

// ParsePage reads the 1-based page query parameter. Invalid or missing values
// fall back to DefaultPage.
func ParsePage(r *http.Request) int {
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			return v
		}
	}
	return DefaultPage
}

// ParsePagination reads page and limit from the request query string. A missing
// or invalid limit is left at zero so the service applies its own default and cap.
func ParsePagination(r *http.Request) domain.PaginationParams {
	pageSize := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
		}
	}
	return domain.PaginationParams{Page: ParsePage(r), PageSize: pageSize}
}
