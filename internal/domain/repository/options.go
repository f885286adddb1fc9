package repository

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NormalizePage clamps pagination inputs to server defaults: 1-indexed page,
// default limit 10, hard cap 100.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages computes ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NormalizeSort whitelists the sort column and direction, falling back to
// created_at desc.
func NormalizeSort(sort, order string, allowed ...string) (string, string) {
	ok := false
	for _, a := range allowed {
		if sort == a {
			ok = true
			break
		}
	}
	if !ok {
		sort = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return sort, order
}
