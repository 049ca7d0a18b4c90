package rewrite

import (
	"math/rand"
	"sync"

	"github.com/mrrlab/brickgen/bio"
)

// Batch processes protein records with nThreads workers. Record i
// uses a random generator seeded with seed+i, so the results do not
// depend on the number of workers. Results and errors are returned
// in the input order.
func (e *Engine) Batch(records bio.Sequences, seed int64, nThreads int) ([]*Result, []error) {
	if nThreads < 1 {
		nThreads = 1
	}
	results := make([]*Result, len(records))
	errs := make([]error, len(records))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nThreads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rnd := rand.New(rand.NewSource(seed + int64(i)))
				results[i], errs[i] = e.Process(records[i].Name, records[i].Sequence, rnd)
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results, errs
}
