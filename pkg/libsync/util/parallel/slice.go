package parallel

import (
	"golang.org/x/sync/errgroup"
)

// ForEachWithErrors invokes iteratee for each element of collection, running
// at most parallelism invocations at once. Parallelism below 1 means
// unbounded. If any iteratee fails, the first encountered error is returned
// after all started invocations finish.
func ForEachWithErrors[T any](collection []T, parallelism int, iteratee func(item T, index int) error) error {
	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, item := range collection {
		g.Go(func() error {
			return iteratee(item, i)
		})
	}

	return g.Wait()
}
