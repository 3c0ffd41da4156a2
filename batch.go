package fibar

import (
	"context"
	"sync"
)

// ShardEvent is one event in a shard fed to RunShards: (t, x, y, polarity)
// with the same field meaning as Reconstructor.Event.
type ShardEvent struct {
	T        uint32
	X, Y     uint16
	Polarity uint8
}

// handle adapts the abort/wait idiom from the teacher repo's
// concurrency helper (a context-cancellable WaitGroup) so RunShards can
// cancel in-flight shards without any locking inside a single
// Reconstructor. Each shard only ever touches its own Reconstructor;
// handle coordinates shutdown across shards, nothing more.
type handle struct {
	m     sync.RWMutex
	abort bool
	wg    sync.WaitGroup
}

func (h *handle) wait(ctx context.Context) error {
	complete := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(complete)
	}()
	select {
	case <-complete:
		return nil
	case <-ctx.Done():
		h.setAbort()
		<-complete
		return ctx.Err()
	}
}

func (h *handle) setAbort() {
	h.m.Lock()
	h.abort = true
	h.m.Unlock()
}

func (h *handle) aborted() bool {
	h.m.RLock()
	a := h.abort
	h.m.RUnlock()
	return a
}

// RunShards ingests each shard's events into its own Reconstructor
// concurrently, one goroutine per shard, and returns the per-shard
// errors in shard order. It never shares a Reconstructor across
// goroutines — spec §5 only permits parallelism across instances that
// "share no state," and each shard gets exactly one. Cancelling ctx
// stops every shard within its next 256 events (the abort flag is
// checked once every 256 events), and every shard that has no error of
// its own then reports ctx.Err().
func RunShards(ctx context.Context, reconstructors []*Reconstructor, shards [][]ShardEvent) []error {
	n := len(reconstructors)
	if len(shards) < n {
		n = len(shards)
	}
	errs := make([]error, n)

	var h handle
	h.wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer h.wg.Done()
			rec := reconstructors[i]
			for j, e := range shards[i] {
				if j&255 == 0 && h.aborted() {
					return
				}
				if err := rec.Event(e.T, e.X, e.Y, e.Polarity); err != nil {
					errs[i] = err
					return
				}
			}
		}(i)
	}
	if err := h.wait(ctx); err != nil {
		for i := range errs {
			if errs[i] == nil {
				errs[i] = err
			}
		}
	}
	return errs
}
