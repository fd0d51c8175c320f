// Package query holds the list-view parameters and page shapes shared by the
// entity list controllers. A State describes one server-side query (search,
// filters, sort, page); a Page is one consistent snapshot of the results.
package query

import (
	"net/url"
	"strconv"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// DefaultLimit is the rows-per-page value used when none is configured.
const DefaultLimit = 10

// State carries the full set of list parameters for one screen. Any change
// other than the page number invalidates the current page position.
type State struct {
	Search    string
	Filters   map[string]string
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

func NewState(limit int) State {
	if limit < 1 {
		limit = DefaultLimit
	}
	return State{
		Filters:   make(map[string]string),
		SortOrder: Ascending,
		Page:      1,
		Limit:     limit,
	}
}

// Update is a partial change to a State. Nil fields are left untouched.
// A filter set to the empty string removes that filter.
type Update struct {
	Search    *string
	Filters   map[string]string
	SortBy    *string
	SortOrder *SortOrder
	Page      *int
	Limit     *int
}

// Merge applies u and returns the resulting State. If anything other than
// the page number changed, the page resets to 1.
func (s State) Merge(u Update) State {
	merged := s.clone()
	changed := false

	if u.Search != nil && *u.Search != merged.Search {
		merged.Search = *u.Search
		changed = true
	}
	for name, value := range u.Filters {
		if value == "" {
			if _, ok := merged.Filters[name]; ok {
				delete(merged.Filters, name)
				changed = true
			}
			continue
		}
		if merged.Filters[name] != value {
			merged.Filters[name] = value
			changed = true
		}
	}
	if u.SortBy != nil && *u.SortBy != merged.SortBy {
		merged.SortBy = *u.SortBy
		changed = true
	}
	if u.SortOrder != nil && *u.SortOrder != merged.SortOrder {
		merged.SortOrder = *u.SortOrder
		changed = true
	}
	if u.Limit != nil && *u.Limit > 0 && *u.Limit != merged.Limit {
		merged.Limit = *u.Limit
		changed = true
	}

	if changed {
		merged.Page = 1
	} else if u.Page != nil && *u.Page >= 1 {
		merged.Page = *u.Page
	}

	return merged
}

// Values encodes the State as the backend's list query parameters.
func (s State) Values() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(s.Page))
	params.Set("limit", strconv.Itoa(s.Limit))
	if s.Search != "" {
		params.Set("search", s.Search)
	}
	if s.SortBy != "" {
		params.Set("sortBy", s.SortBy)
		params.Set("sortOrder", string(s.SortOrder))
	}
	for name, value := range s.Filters {
		params.Set(name, value)
	}
	return params
}

func (s State) clone() State {
	filters := make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		filters[k] = v
	}
	clone := s
	clone.Filters = filters
	return clone
}
