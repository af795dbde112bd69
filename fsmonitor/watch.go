// Package fsmonitor is the one concrete raw-event source spec.md treats
// as an external collaborator (§1: "the I/O stack that delivers raw
// file-change notifications... we specify only the event-type
// vocabulary and the coalescer's contract"). It wraps fsnotify and
// translates kernel-level events into the (file, other_file, kind)
// vocabulary filewatch.Coalescer expects.
package fsmonitor

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/retext/retext/filewatch"
	"github.com/retext/retext/ioerr"
)

// Watch adds path to a new fsnotify watcher and feeds every event into
// coalescer until ctx is cancelled or the watcher fails. It does not
// implement recursive directory tracking or mount-point semantics —
// those are explicitly out of scope (spec.md Non-goals: "a full
// file-monitor").
func Watch(ctx context.Context, path string, coalescer *filewatch.Coalescer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "fsmonitor: create watcher")
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "fsmonitor: watch %s (%s)", path, ioerr.FromError(err))
	}

	logger := log.New("component", "fsmonitor", "path", path)
	coalescer.OnCancel = func() {
		watcher.Close()
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				coalescer.Cancel()
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				kind, ok := translate(ev.Op)
				if !ok {
					continue
				}
				coalescer.Emit(ev.Name, "", kind)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watch error", "kind", ioerr.FromError(err).String(), "err", err)
			}
		}
	}()

	return nil
}

// translate maps an fsnotify operation bitmask to the single most
// specific filewatch.EventKind it represents (§6's event vocabulary).
func translate(op fsnotify.Op) (filewatch.EventKind, bool) {
	switch {
	case op&fsnotify.Remove != 0:
		return filewatch.Deleted, true
	case op&fsnotify.Rename != 0:
		return filewatch.Moved, true
	case op&fsnotify.Create != 0:
		return filewatch.Created, true
	case op&fsnotify.Chmod != 0:
		return filewatch.AttributeChanged, true
	case op&fsnotify.Write != 0:
		return filewatch.Changed, true
	default:
		return 0, false
	}
}
