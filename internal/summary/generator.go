package summary

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/korbo/claude-chats/internal/log"
	"github.com/korbo/claude-chats/internal/session"
)

type job struct {
	id      string
	message string
}

// Generate summarizes every chat missing from the cache, using a fixed pool
// of workers. Per-item failures are dropped; the chat keeps showing its raw
// first-message text. All results are merged and flushed once at the end of
// the batch, so an interrupted run never touches previously cached entries.
// progress, if non-nil, is called after each item completes. Returns the
// number of new summaries cached.
func Generate(ctx context.Context, client Summarizer, chats []session.Chat, cache *Cache, workers int, progress func(done, total int)) (int, error) {
	var jobs []job
	for _, chat := range chats {
		if chat.FirstMessage == "" {
			continue // placeholders have nothing to summarize
		}
		if _, ok := cache.Get(chat.ID); ok {
			continue
		}
		jobs = append(jobs, job{id: chat.ID, message: chat.FirstMessage})
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	if workers <= 0 {
		workers = 4
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var (
		done    atomic.Int64
		total   = len(jobs)
		queue   = make(chan job)
		results = make(map[string]string, total)
		resMu   sync.Mutex
		wg      sync.WaitGroup
	)

	if progress != nil {
		progress(0, total)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				label, err := client.Summarize(ctx, j.message)
				if err != nil {
					log.Warn().Err(err).Str("chat", j.id).Msg("summary failed")
				} else {
					resMu.Lock()
					results[j.id] = label
					resMu.Unlock()
				}
				n := done.Add(1)
				if progress != nil {
					progress(int(n), total)
				}
			}
		}()
	}

	for _, j := range jobs {
		queue <- j
	}
	close(queue)
	wg.Wait()

	if len(results) == 0 {
		return 0, nil
	}
	cache.Merge(results)
	return len(results), cache.Save()
}
