package algo

import "strconv"

// DefaultBucketLimit is the highest count that gets its own bucket.
const DefaultBucketLimit = 4

// Bucket maps a count to its bucket label. Counts above limit share the
// catch-all bucket ">limit". A limit below 1 falls back to DefaultBucketLimit.
func Bucket(n, limit int) string {
	limit = clampLimit(limit)
	if n > limit {
		return ">" + strconv.Itoa(limit)
	}
	return strconv.Itoa(n)
}

// BucketLabels returns all bucket labels for a limit, in order: "1".."limit", ">limit".
func BucketLabels(limit int) []string {
	limit = clampLimit(limit)
	labels := make([]string, 0, limit+1)
	for i := 1; i <= limit; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	return append(labels, ">"+strconv.Itoa(limit))
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultBucketLimit
	}
	return limit
}
