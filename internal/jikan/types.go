package jikan

import "github.com/varoOP/animetop/internal/domain"

// Page is one response of the top anime endpoint.
type Page struct {
	Data       []domain.Record `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

// StopReason tells why a fetch loop ended.
type StopReason string

const (
	StopEmptyPage    StopReason = "empty_page"
	StopLimitReached StopReason = "limit_reached"
	StopRequestError StopReason = "request_error"
)

// Result is the outcome of a fetch. Err holds the request failure that ended
// the loop, if any; Records always holds what was accumulated before it.
type Result struct {
	Records []domain.Record
	Pages   int
	Stop    StopReason
	Err     error
}
