package md2blog

import "runtime"

// Worker sizing bounds for article rendering.
const (
	MinPoolSize = 1
	MaxPoolSize = 16
)

// ResolvePoolSize returns the number of render workers.
// An explicit positive value wins; otherwise GOMAXPROCS (container-aware
// once automaxprocs has run) is clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
