package pipeline

import (
	"context"
	"sync"
)

// BatchItem is one file queued for batch conversion.
type BatchItem struct {
	Filename string
	Data     []byte
}

// BatchResult pairs one batch item with its outcome. Index is the item's
// position in the input slice.
type BatchResult struct {
	Index    int
	Filename string
	Conv     *Conversion
	Err      error
}

// ConvertBatch converts items concurrently with the given number of
// workers and returns results ordered by input index. A canceled context
// fails the remaining unstarted items with the context's error.
func (p *Pipeline) ConvertBatch(ctx context.Context, items []BatchItem, workers int) []BatchResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]BatchResult, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				item := items[i]
				conv, err := p.Convert(item.Filename, item.Data)
				results[i] = BatchResult{
					Index:    i,
					Filename: item.Filename,
					Conv:     conv,
					Err:      err,
				}
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			for j := i; j < len(items); j++ {
				results[j] = BatchResult{Index: j, Filename: items[j].Filename, Err: ctx.Err()}
			}
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
