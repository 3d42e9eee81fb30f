package service

import (
	"strings"
	"time"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
)

// filterDateLayout is the yyyy-mm-dd format the filter dialog submits.
const filterDateLayout = "2006-01-02"

// FilterReports applies free-text search plus the filter dialog's
// constraints. A report passes only if every predicate passes.
func FilterReports(reports []model.DisplayReport, query string, filters model.FilterState) []model.DisplayReport {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.DisplayReport, 0, len(reports))
	for _, r := range reports {
		if !matchesSearch(&r, q) {
			continue
		}
		if filters.Category != "" && r.Category != filters.Category {
			continue
		}
		if filters.Status != "" && string(r.Status) != filters.Status {
			continue
		}
		if !matchesDateRange(&r, filters.DateFrom, filters.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r *model.DisplayReport, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Category), q) ||
		strings.Contains(strings.ToLower(r.Location), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Author), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchesDateRange checks the report date against the inclusive bounds:
// date_from at the start of its day, date_to at the very end of its day. A
// report whose date does not parse is kept - the filter fails open rather
// than hiding reports over a formatting problem. That leniency is a product
// decision, not an oversight.
func matchesDateRange(r *model.DisplayReport, dateFrom, dateTo string) bool {
	if dateFrom == "" && dateTo == "" {
		return true
	}

	reportDate, err := time.Parse(displayDateLayout, r.Date)
	if err != nil {
		return true
	}

	if dateFrom != "" {
		if from, err := time.Parse(filterDateLayout, dateFrom); err == nil {
			if reportDate.Before(from) {
				return false
			}
		}
	}

	if dateTo != "" {
		if to, err := time.Parse(filterDateLayout, dateTo); err == nil {
			endOfDay := to.Add(24*time.Hour - time.Millisecond)
			if reportDate.After(endOfDay) {
				return false
			}
		}
	}

	return true
}
