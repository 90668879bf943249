package syncs

import (
	"errors"
	"sync"
)

// ForEach calls fn for every item, at most cap(s) at a time, and joins the errors.
func ForEach[T any](s Semaphore, items []T, fn func(T) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(items))
	for i, item := range items {
		s.Acquire()
		wg.Go(func() {
			defer s.Release()
			errs[i] = fn(item)
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}
