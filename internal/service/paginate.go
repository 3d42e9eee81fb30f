package service

import "github.com/Faeyinn/lestari.in---beyonder-team/internal/model"

// ItemsPerPage is fixed; the list always shows five reports per page.
const ItemsPerPage = 5

// Paginate slices the filtered collection into the requested page. The page
// number is clamped into [1, totalPages] so a stale page from before a
// filter change can never run past the end; an empty collection still counts
// as one (empty) page.
func Paginate(reports []model.DisplayReport, page int) ([]model.DisplayReport, int, int) {
	totalPages := (len(reports) + ItemsPerPage - 1) / ItemsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ItemsPerPage
	end := start + ItemsPerPage
	if start > len(reports) {
		start = len(reports)
	}
	if end > len(reports) {
		end = len(reports)
	}

	return reports[start:end], page, totalPages
}
