package flexpay

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListParams drives cursor pagination on the list endpoints. The cursor is
// the identifier of the last item seen on the previous page; re-querying
// with it returns the next page with no overlap and no gaps, provided the
// upstream list is not mutating out of order underneath the walk.
//
// An empty page signals end-of-list. A page shorter than Count is not by
// itself proof of termination while the upstream source is still mutating.
type ListParams struct {
	// SinceToken is the id of the last-seen item; empty starts from the
	// beginning.
	SinceToken string

	// Count is the page size. It must be positive.
	Count int

	// Order sorts by creation order. Defaults to ascending.
	Order SortOrder
}

func (p ListParams) encode() (string, error) {
	if p.Count <= 0 {
		return "", &ValidationError{Message: fmt.Sprintf("list count must be a positive integer, got %d", p.Count)}
	}
	order := p.Order
	if order == "" {
		order = SortAscending
	}
	if order != SortAscending && order != SortDescending {
		return "", &ValidationError{Message: fmt.Sprintf("unknown sort order %q", order)}
	}

	q := url.Values{}
	q.Set("count", strconv.Itoa(p.Count))
	q.Set("sortOrder", string(order))
	if p.SinceToken != "" {
		q.Set("sinceToken", p.SinceToken)
	}
	return "?" + q.Encode(), nil
}
