package utils

// LastPage is never below 1, so an empty listing still reports page 1 of 1.
func LastPage(total int64, perPage int) int {
	if perPage <= 0 || total <= int64(perPage) {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
