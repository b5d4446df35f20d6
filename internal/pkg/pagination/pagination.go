package pagination

import (
	"errors"
	"strconv"

	"coderr/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var ErrInvalidPage = errors.New("invalid page")

const (
	PageParam     = "page"
	PageSizeParam = "page_size"
)

// Page is the paginated list envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type Params struct {
	Page int
	Size int
}

func (p Params) Offset() int { return (p.Page - 1) * p.Size }

// Parse reads page and page_size. A malformed page is an error; a malformed
// page_size falls back to the default and oversized values are capped.
func Parse(c *gin.Context, defaultSize, maxSize int) (Params, error) {
	p := Params{Page: 1, Size: defaultSize}

	if raw, ok := c.GetQuery(PageParam); ok && raw != "last" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, ErrInvalidPage
		}
		p.Page = n
	}

	if raw := c.Query(PageSizeParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = min(n, maxSize)
		}
	}
	return p, nil
}

// Resolve turns "page=last" into a number and rejects pages past the end.
func (p Params) Resolve(c *gin.Context, total int64) (Params, error) {
	pages := pageCount(total, p.Size)
	if c.Query(PageParam) == "last" {
		p.Page = pages
	}
	if p.Page > pages {
		return p, ErrInvalidPage
	}
	return p, nil
}

// Build produces the envelope with absolute next/previous links.
func Build[T any](c *gin.Context, p Params, total int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	out := Page[T]{Count: total, Results: results}

	if p.Page < pageCount(total, p.Size) {
		out.Next = link(c, p.Page+1)
	}
	if p.Page > 1 {
		out.Previous = link(c, p.Page-1)
	}
	return out
}

func pageCount(total int64, size int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// link keeps the current query and swaps the page number. Page one drops the parameter.
func link(c *gin.Context, page int) *string {
	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}

	u := response.BaseURL(c) + c.Request.URL.Path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return &u
}
