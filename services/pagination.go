package services

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Pagination carries normalized limit/offset values for list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// NormalizePagination clamps raw query values into a usable window.
// Non-positive limits fall back to the default, oversized limits are capped,
// negative offsets become 0.
func NormalizePagination(limit, offset int) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}
