package models

// Page is one window of a filtered listing.
type Page[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Paginate slices items for a 1-based page. Out-of-range pages are empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = len(items)
	}

	out := Page[T]{Data: []T{}, Total: len(items), Page: page, PageSize: pageSize}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return out
	}

	end := min(start+pageSize, len(items))
	out.Data = items[start:end]

	return out
}
