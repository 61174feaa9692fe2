package harvest

// DefaultBatchSize is used when a non-positive batch size is requested.
const DefaultBatchSize = 1000

// Partition splits items into consecutive slices of at most size elements.
// Order is preserved and only the last slice may be shorter.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
