package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type accessRecord struct {
	shortCode  string
	accessedAt time.Time
	visit      entity.Visit
}

// AccessRecorder appends access events and updates URL stats.
//
// With zero workers every event is written before Record returns. Otherwise
// events go through a bounded queue drained by Run; when the queue is full
// or Run has stopped, Record falls back to a synchronous write so that no
// event is dropped. Write errors are logged and never returned.
type AccessRecorder struct {
	repo         accessRepository
	logger       *slog.Logger
	workers      int
	writeTimeout time.Duration
	queue        chan accessRecord
	mu           sync.RWMutex
	stopped      bool
	now          func() time.Time
}

func NewAccessRecorder(repo accessRepository, logger *slog.Logger, workers, queueSize int, writeTimeout time.Duration) *AccessRecorder {
	if workers < 0 {
		workers = 0
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &AccessRecorder{
		repo:         repo,
		logger:       logger,
		workers:      workers,
		writeTimeout: writeTimeout,
		queue:        make(chan accessRecord, queueSize),
		now:          time.Now,
	}
}

func (r *AccessRecorder) Record(ctx context.Context, shortCode string, visit entity.Visit) {
	rec := accessRecord{
		shortCode:  shortCode,
		accessedAt: r.now().UTC(),
		visit:      visit,
	}

	if r.workers > 0 && r.enqueue(rec) {
		return
	}

	r.write(context.WithoutCancel(ctx), rec)
}

// enqueue hands rec to the workers. It reports false when the queue is full
// or the recorder has stopped; the queue only grows while stopped is false.
func (r *AccessRecorder) enqueue(rec accessRecord) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return false
	}

	select {
	case r.queue <- rec:
		metrics.AccessLogQueueLength.Set(float64(len(r.queue)))
		return true
	default:
		r.logger.Warn("access log queue is full, writing synchronously",
			slog.String("short_code", rec.shortCode),
		)
		return false
	}
}

// Run starts the workers and blocks until ctx is done. Queued events are
// written before Run returns.
func (r *AccessRecorder) Run(ctx context.Context) error {
	if r.workers == 0 {
		<-ctx.Done()
		return nil
	}

	var g errgroup.Group

	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			r.work(ctx)
			return nil
		})
	}

	err := g.Wait()

	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.drain()

	return err
}

func (r *AccessRecorder) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-r.queue:
			metrics.AccessLogQueueLength.Set(float64(len(r.queue)))
			r.write(context.Background(), rec)
		}
	}
}

func (r *AccessRecorder) drain() {
	for {
		select {
		case rec := <-r.queue:
			r.write(context.Background(), rec)
		default:
			metrics.AccessLogQueueLength.Set(0)
			return
		}
	}
}

func (r *AccessRecorder) write(ctx context.Context, rec accessRecord) {
	if r.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.writeTimeout)
		defer cancel()
	}

	if err := r.repo.Save(ctx, rec.shortCode, rec.accessedAt, rec.visit); err != nil {
		metrics.AccessLogFailuresTotal.Inc()
		r.logger.Error("failed to record access event",
			slog.String("short_code", rec.shortCode),
			slog.Any("err", err),
		)
	}
}
