package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/services"
)

// idParam parses the {id} route parameter
func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errs.NewBadRequestError("missing id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid id")
	}
	return uint(id), nil
}

// pageParams reads page and limit from the query string, clamping both to a
// minimum of 1 so the offset window never goes negative.
func pageParams(r *http.Request) (page, limit int) {
	page = queryInt(r, "page", 1)
	limit = queryInt(r, "limit", services.DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

// queryInt reads a single integer query parameter with a default
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// requestURL reconstructs the absolute URL of the request, query included,
// for use as the pagination link base.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
