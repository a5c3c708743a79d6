package watcher

import (
	"context"
	"time"
)

// startPolling posts a trigger on a fixed interval. The mailbox
// collapses ticks that arrive while a run is still in flight.
func (w *Watcher) startPolling(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			w.mb.Put(Trigger{At: t})
		}
	}
}
