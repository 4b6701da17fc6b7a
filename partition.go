package aeff

// Chunks splits the half-open range [0, n) into k contiguous slices with
// boundaries at floor(n*i/k).  Chunk sizes differ by at most one and sum to
// n; the last chunk absorbs the remainder.  k larger than n yields empty
// chunks.
func Chunks(n, k int) [][2]int {
	if k < 1 {
		k = 1
	}
	out := make([][2]int, k)
	for i := 0; i < k; i++ {
		out[i] = [2]int{n * i / k, n * (i + 1) / k}
	}
	return out
}

// ChunkStrings partitions items into k contiguous near-equal slices sharing
// the backing array of items.
func ChunkStrings(items []string, k int) [][]string {
	bounds := Chunks(len(items), k)
	out := make([][]string, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, items[b[0]:b[1]])
	}
	return out
}
