package services

// Page returns the slice [(page-1)*size, page*size) of items. Pages beyond
// the last return an empty slice, never an error. page and size are assumed
// validated by the query descriptor (page >= 1, size >= 1).
func Page[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages computes ceil(total/size), with 0 when total is 0.
func TotalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
