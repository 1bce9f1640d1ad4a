package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// parseDay reads a YYYY-MM-DD value as midnight in loc. Empty input yields nil.
func parseDay(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// dayRange reads startDate/endDate query values as [start, end+1 day) so the end day is included.
func dayRange(c *gin.Context, loc *time.Location, errs *apperrors.ValidationErrors) (start, end *time.Time) {
	start, err := parseDay(c.Query("startDate"), loc)
	if err != nil {
		errs.Add("startDate", "must be a date in YYYY-MM-DD format")
	}
	last, err := parseDay(c.Query("endDate"), loc)
	if err != nil {
		errs.Add("endDate", "must be a date in YYYY-MM-DD format")
	}
	if last != nil {
		next := last.AddDate(0, 0, 1)
		end = &next
	}
	return start, end
}

// pageParams reads page/limit and records any problems in errs.
func pageParams(c *gin.Context, errs *apperrors.ValidationErrors) pagination.Params {
	p, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		*errs = append(*errs, apperrors.Details(err)...)
		return pagination.Params{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
	}
	return p
}

// optionalQuery returns a pointer to the trimmed query value, or nil when it is absent.
func optionalQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(c *gin.Context, key string, fallback int, errs *apperrors.ValidationErrors) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, "must be an integer")
		return fallback
	}
	return n
}
