// Package archive provides the shared background archival service that
// compresses retired segments and removes the originals.
package archive

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sunipkm/datastor/errors"
	"github.com/sunipkm/datastor/metric"
)

// Service compresses retired segments (files or directories) into sibling
// .tar.gz archives and deletes the originals, without ever blocking the
// producers that retire them.
//
// One Service is constructed by the embedding application and passed to
// every store handle that wants archival. Handles reference-count it:
// constructors Retain, Close Releases, and the worker shuts down only when
// the last reference (including the creator's, dropped by Stop) is gone.
// Closing one handle therefore never halts archival for its siblings.
type Service struct {
	logger   *slog.Logger
	registry *metric.MetricsRegistry
	metrics  *serviceMetrics

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []string
	refs     int
	started  bool
	stopping bool
	done     chan struct{}

	// Statistics (atomic), always tracked; Prometheus is opt-in.
	enqueued int64
	archived int64
	failed   int64
	dropped  int64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for archival outcomes. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRegistry enables Prometheus metrics, registered under the
// "archive" service name.
func WithMetricsRegistry(registry *metric.MetricsRegistry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// NewService creates an archival service. The creator holds the first
// reference; drop it with Stop.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		refs:   1,
		done:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the worker goroutine. It must be called exactly once,
// before any handle enqueues work.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.ErrAlreadyStarted
	}
	if s.registry != nil {
		m, err := newServiceMetrics(s.registry)
		if err != nil {
			return err
		}
		s.metrics = m
	}
	s.started = true
	go s.run()
	s.logger.Debug("archival worker started")
	return nil
}

// Enqueue hands a retired segment path to the worker. It never blocks:
// the queue is unbounded and strictly FIFO, so if segment A retires before
// segment B, A's archival begins before B's. Producers never wait for
// completion, and archival failures are never surfaced to them.
func (s *Service) Enqueue(path string) {
	s.mu.Lock()
	if !s.started || s.stopping {
		s.mu.Unlock()
		atomic.AddInt64(&s.dropped, 1)
		s.logger.Warn("archival request dropped, service not running", "path", path)
		return
	}
	s.queue = append(s.queue, path)
	depth := len(s.queue)
	s.mu.Unlock()

	atomic.AddInt64(&s.enqueued, 1)
	if s.metrics != nil {
		s.metrics.queueDepth.Set(float64(depth))
	}
	s.cond.Signal()
}

// Retain adds a reference. Store constructors call this; each Retain must
// be paired with a Release.
func (s *Service) Retain() {
	s.mu.Lock()
	s.refs++
	s.mu.Unlock()
}

// Release drops a reference. When the last reference is dropped the stop
// sentinel is delivered: the worker drains everything queued before it,
// in order, then exits; Release joins it before returning.
func (s *Service) Release() {
	s.mu.Lock()
	if s.refs > 0 {
		s.refs--
	}
	last := s.refs == 0 && s.started && !s.stopping
	if last {
		s.stopping = true
	}
	s.mu.Unlock()

	if last {
		s.cond.Signal()
		<-s.done
	}
}

// Stop drops the creator's reference and, if it is the last one, shuts the
// worker down and joins it. Handles still holding references keep the
// worker alive; it stops when the last of them closes.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return errors.ErrNotStarted
	}
	if s.stopping {
		s.mu.Unlock()
		return errors.ErrAlreadyStopped
	}
	s.mu.Unlock()

	s.Release()
	return nil
}

// Stats reports the service's internal counters.
type Stats struct {
	Enqueued   int64
	Archived   int64
	Failed     int64
	Dropped    int64
	QueueDepth int
}

// Stats returns a snapshot of the service counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	depth := len(s.queue)
	s.mu.Unlock()
	return Stats{
		Enqueued:   atomic.LoadInt64(&s.enqueued),
		Archived:   atomic.LoadInt64(&s.archived),
		Failed:     atomic.LoadInt64(&s.failed),
		Dropped:    atomic.LoadInt64(&s.dropped),
		QueueDepth: depth,
	}
}

// run is the single consumer loop. Jobs run to completion or failure; no
// job is cancellable mid-flight.
func (s *Service) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.stopping {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			// Stop sentinel observed and the backlog is drained.
			s.mu.Unlock()
			s.logger.Debug("archival worker exiting")
			return
		}
		path := s.queue[0]
		s.queue = s.queue[1:]
		depth := len(s.queue)
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.queueDepth.Set(float64(depth))
		}
		s.process(path)
	}
}

// process archives one retired segment and deletes the original only on
// success. Failures are logged and otherwise ignored: archival is
// fire-and-forget and never reports to producers.
func (s *Service) process(path string) {
	start := time.Now()
	dst := path + ".tar.gz"

	if err := buildTarball(path, dst); err != nil {
		atomic.AddInt64(&s.failed, 1)
		if s.metrics != nil {
			s.metrics.failed.Inc()
		}
		s.logger.Warn("archive creation failed", "path", path, "error", err)
		return
	}
	if err := removeSource(path); err != nil {
		atomic.AddInt64(&s.failed, 1)
		if s.metrics != nil {
			s.metrics.failed.Inc()
		}
		s.logger.Warn("source removal failed after archiving", "path", path, "error", err)
		return
	}

	atomic.AddInt64(&s.archived, 1)
	if s.metrics != nil {
		s.metrics.archived.Inc()
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}
	s.logger.Info("segment archived", "path", path, "archive", dst,
		"elapsed", time.Since(start))
}
