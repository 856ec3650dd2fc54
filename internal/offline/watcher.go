// ABOUTME: Watcher flushes the sync queue when connectivity returns.
// ABOUTME: The offline→online transition is the sole flush trigger.
package offline

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Watcher consumes connectivity transitions and flushes the sync queue on
// every offline→online edge. There is no periodic retry: a failed item
// waits for the next reconnect (or an explicit flush).
type Watcher struct {
	svc  *Service
	conn Connectivity
	log  *logrus.Logger

	stop chan struct{}
	done chan struct{}
}

// NewWatcher creates a watcher over the service's connectivity source.
func NewWatcher(svc *Service, log *logrus.Logger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		svc:  svc,
		conn: svc.conn,
		log:  log,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the watch loop. If the connection is already online it
// flushes once immediately, covering writes queued before the watcher ran.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		if w.conn.Online() {
			w.flush(ctx)
		}

		for {
			select {
			case online := <-w.conn.Changes():
				if online {
					w.flush(ctx)
				}
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop halts the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watcher) flush(ctx context.Context) {
	flushed, failed := w.svc.FlushQueue(ctx)
	if flushed == 0 && failed == 0 {
		return
	}
	w.log.WithFields(logrus.Fields{
		"flushed": flushed,
		"failed":  failed,
	}).Info("sync queue flush complete")
}
