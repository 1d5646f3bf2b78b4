package partition

import "sync"

// chunks splits n items into at most workersCount contiguous [start, end) ranges.
func chunks(n, workersCount int) [][2]int {
	workersCount = max(1, workersCount)
	chunkSize := (n + workersCount - 1) / workersCount

	var ranges [][2]int
	for start := 0; start < n; start += chunkSize {
		ranges = append(ranges, [2]int{start, min(start+chunkSize, n)})
	}
	return ranges
}

// task runs fn over data, one goroutine per chunk.
func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	for _, chunk := range chunks(len(data), workersCount) {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(chunk[0], chunk[1])
	}
	wg.Wait()
}
