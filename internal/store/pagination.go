package store

// Page-based pagination helpers shared by the list endpoints.

// MaxPageSize caps the limit parameter on every list endpoint.
const MaxPageSize = 100

// NormalizePage clamps a page number to at least 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeLimit applies the endpoint default when limit is unset and
// clamps the result to [1, MaxPageSize].
func NormalizeLimit(limit, defaultLimit int) int {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// PageResult is one page of a larger result set.
type PageResult[T any] struct {
	Items   []T
	Total   int
	Page    int
	Limit   int
	HasMore bool
}

// PaginateSlice cuts one page out of the full, already-filtered result
// set. Page and limit are assumed normalized.
func PaginateSlice[T any](items []T, page, limit int) PageResult[T] {
	total := len(items)

	start := (page - 1) * limit
	var pageItems []T
	if start < total {
		end := start + limit
		if end > total {
			end = total
		}
		pageItems = items[start:end]
	}

	return PageResult[T]{
		Items:   pageItems,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: page*limit < total,
	}
}
