// ABOUTME: Connectivity abstraction: a query plus a change signal.
// ABOUTME: Production polls the server health endpoint; tests inject fakes.
package offline

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Connectivity reports whether the server is reachable and signals
// transitions. Changes delivers the new state after each transition; the
// offline→online edge is what triggers a queue flush.
type Connectivity interface {
	Online() bool
	Changes() <-chan bool
}

// HealthProber is the probe the connectivity poller runs.
type HealthProber interface {
	Health(ctx context.Context) error
}

// OnDemand checks reachability with a fresh probe on every Online call.
// Suits one-shot CLI commands that have no background poller; its Changes
// channel never fires.
type OnDemand struct {
	prober HealthProber
}

// NewOnDemand creates an on-demand connectivity check.
func NewOnDemand(prober HealthProber) *OnDemand {
	return &OnDemand{prober: prober}
}

// Online probes the server with a short timeout.
func (o *OnDemand) Online() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return o.prober.Health(ctx) == nil
}

// Changes returns a channel that never delivers.
func (o *OnDemand) Changes() <-chan bool {
	return nil
}

// Probe polls a health endpoint on an interval and publishes reachability
// transitions. It starts offline until the first successful probe.
type Probe struct {
	prober   HealthProber
	interval time.Duration
	log      *logrus.Logger

	mu      sync.RWMutex
	online  bool
	changes chan bool
	stop    chan struct{}
	done    chan struct{}
}

// NewProbe creates a connectivity probe. Call Start to begin polling.
func NewProbe(prober HealthProber, interval time.Duration, log *logrus.Logger) *Probe {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Probe{
		prober:   prober,
		interval: interval,
		log:      log,
		changes:  make(chan bool, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Online reports the last observed reachability.
func (p *Probe) Online() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online
}

// Changes returns the transition channel.
func (p *Probe) Changes() <-chan bool {
	return p.changes
}

// Start probes once immediately and then on every tick until Stop.
func (p *Probe) Start(ctx context.Context) {
	go func() {
		defer close(p.done)

		p.probe(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.probe(ctx)
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop halts polling and waits for the poll goroutine to exit.
func (p *Probe) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Probe) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	online := p.prober.Health(probeCtx) == nil

	p.mu.Lock()
	changed := online != p.online
	p.online = online
	p.mu.Unlock()

	if !changed {
		return
	}

	p.log.WithField("online", online).Info("connectivity changed")

	// Drop the stale transition if nobody consumed it; the latest state
	// is what matters.
	select {
	case p.changes <- online:
	default:
		select {
		case <-p.changes:
		default:
		}
		p.changes <- online
	}
}
