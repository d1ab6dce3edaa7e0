// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import "github.com/danielhkuo/group-swipe/models"

// MaxPageSize caps the limit accepted by Paginate.
const MaxPageSize = 100

// Paginate slices a sorted feed into one page. Pages are 1-indexed; page
// numbers below 1 read as 1 and limit is clamped to [1, MaxPageSize].
func Paginate(all []models.SessionResult, page, limit int) models.ResultsPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	items := make([]models.SessionResult, end-start)
	copy(items, all[start:end])

	return models.ResultsPage{
		Results: items,
		Page:    page,
		Limit:   limit,
		Total:   len(all),
		HasMore: end < len(all),
	}
}
