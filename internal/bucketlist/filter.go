package bucketlist

import (
	"net/url"
	"strconv"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Filter narrows and windows the index query. Search reduces the candidate
// set first; pagination windows the filtered set.
type Filter struct {
	Query string
	Page  int
	Limit int
}

// ParseFilter reads q/page/limit query parameters. Page is 1-indexed and
// defaults to 1, limit defaults to 10; unparsable or out-of-range values
// fall back to the defaults rather than erroring.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Query: values.Get("q"),
		Page:  1,
		Limit: defaultLimit,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
		if f.Limit > maxLimit {
			f.Limit = maxLimit
		}
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
