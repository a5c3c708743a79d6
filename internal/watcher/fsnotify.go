package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// startFsNotify posts a trigger when fsnotify reports changes under the
// source root, debounced so a burst of writes produces one trigger
// after the tree settles.
func (w *Watcher) startFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}

			w.log.Debug("event", "name", ev.Name, "op", ev.Op.String())

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			// New date directories appear at the root; watch them too
			// so writes inside the tree keep triggering.
			if ev.Op&fsnotify.Create != 0 {
				_ = watcher.Add(ev.Name)
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.mb.Put(Trigger{At: time.Now()})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
