package services

import (
	"net/url"
	"strconv"
)

// DefaultPageSize is the limit applied by every paginated endpoint when the
// request does not carry one.
const DefaultPageSize = 6

// Page is the pagination envelope for a listing: the total match count, the
// absolute next/previous URLs (nil when absent) and the half-open offset
// window [Offset, Offset+Limit) the caller should fetch.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Offset   int     `json:"-"`
	Limit    int     `json:"-"`
}

// Paginate computes pagination metadata for a 1-indexed page over total
// items. It is a pure function: no I/O, no clamping. Next is present iff
// page*limit < total; Previous iff page > 1. Link URLs are baseURL with the
// page and limit query parameters rewritten and every other parameter
// preserved.
func Paginate(total, page, limit int, baseURL string) Page {
	result := Page{
		Count:  total,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	if page*limit < total {
		next := rewritePageParams(baseURL, page+1, limit)
		result.Next = &next
	}
	if page > 1 {
		previous := rewritePageParams(baseURL, page-1, limit)
		result.Previous = &previous
	}
	return result
}

// rewritePageParams replaces page and limit in the URL's query string,
// keeping all other parameters intact. A baseURL that fails to parse is
// returned with a plainly appended query string rather than dropped.
func rewritePageParams(baseURL string, page, limit int) string {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
