package services

// Paging clamp bounds, shared by every paginated list query.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// clampPaging normalizes a page/limit pair: page floors at 1, limit
// falls back to the default and caps at the maximum.
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
