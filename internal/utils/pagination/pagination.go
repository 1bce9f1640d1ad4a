package pagination

import (
	"strconv"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse reads raw page/limit query values. Empty values take the defaults;
// anything non-numeric or out of range is a validation error.
func Parse(rawPage, rawLimit string) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	var errs apperrors.ValidationErrors

	if rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			errs.Add("page", "must be a positive integer")
		} else {
			p.Page = page
		}
	}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 || limit > MaxLimit {
			errs.Add("limit", "must be between 1 and "+strconv.Itoa(MaxLimit))
		} else {
			p.Limit = limit
		}
	}
	if err := errs.OrNil(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Meta describes a page of results in a response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes the page count for total rows.
func NewMeta(p Params, total int) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
