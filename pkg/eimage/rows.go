package eimage

import(
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEachRow calls f once for every row in [0,height), spread over a
// pool of nWorkers goroutines (nWorkers <= 0 means one per CPU). Each
// call must only write to its own row of output. The first error
// stops the pool, and is returned.
func ForEachRow(ctx context.Context, height, nWorkers int, f func(y int) error) error {
	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}
	if nWorkers > height {
		nWorkers = height
	}

	jobsChan := make(chan int, height)
	for y:=0; y<height; y++ {
		jobsChan<- y
	}
	close(jobsChan)

	g, ctx := errgroup.WithContext(ctx)
	for i:=0; i<nWorkers; i++ {
		g.Go(func() error {
			for y := range jobsChan {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f(y); err != nil {
					return fmt.Errorf("row %d: %w", y, err)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
