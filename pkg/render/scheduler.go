package render

import (
	"context"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/rescue"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
	"golang.org/x/time/rate"

	"github.com/joeblew999/plat-mailview/pkg/privacy"
	"github.com/joeblew999/plat-mailview/pkg/tracker"
)

// Scheduler decides render order for a thread and publishes results into the
// cache: placeholders synchronously, the selected message first, the rest in
// thread order, and finally the tracker report once every body has been
// scanned. The UI thread only ever reads the cache and receives the
// callbacks; all rendering happens on background goroutines.
type Scheduler struct {
	worker   *Worker
	cache    *Cache
	limiter  *rate.Limiter
	onReady  func(id string)
	onReport func(tracker.Report)

	ctx     context.Context
	cancel  context.CancelFunc
	group   *threading.RoutineGroup
	stopped *syncx.AtomicBool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithBackfillRate limits how many non-selected renders start per second,
// so a long thread cannot monopolize CPU while the user is scrolling. Zero
// or negative disables pacing.
func WithBackfillRate(perSecond int) SchedulerOption {
	return func(s *Scheduler) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithOnReady registers a callback invoked after a message's body is
// published to the cache. Called from a background goroutine.
func WithOnReady(fn func(id string)) SchedulerOption {
	return func(s *Scheduler) { s.onReady = fn }
}

// WithOnTrackerReport registers a callback for the per-thread tracker
// report. Called from a background goroutine, after all bodies rendered.
func WithOnTrackerReport(fn func(tracker.Report)) SchedulerOption {
	return func(s *Scheduler) { s.onReport = fn }
}

// NewScheduler creates a scheduler publishing into cache via worker.
func NewScheduler(worker *Worker, cache *Cache, opts ...SchedulerOption) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		worker:  worker,
		cache:   cache,
		ctx:     ctx,
		cancel:  cancel,
		group:   threading.NewRoutineGroup(),
		stopped: syncx.NewAtomicBool(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleThread starts one scheduling pass over a thread. It synchronously
// seeds a placeholder for every message, then renders in the background:
// selected message first, remaining messages in thread order. The selected
// message's cache entry is always available no later than any other entry
// from this pass.
func (s *Scheduler) ScheduleThread(msgs []Message, selectedID string, settings privacy.Settings) {
	if s.stopped.True() {
		return
	}

	ctx := logx.ContextWithFields(s.ctx,
		logx.Field("pass_id", uuid.New().String()),
		logx.Field("messages", len(msgs)),
		logx.Field("selected_id", selectedID),
	)

	s.cache.Reset(settings)
	for _, m := range msgs {
		s.cache.SeedPlaceholder(m.ID, m.Preview)
	}

	logx.WithContext(ctx).Info("scheduling thread render")
	s.group.RunSafe(func() { s.runPass(ctx, msgs, selectedID, settings) })
}

// Stop cancels in-flight passes and waits for background goroutines.
// Results completing after Stop are simply discarded: cache writes are
// idempotent and keyed by id, so no cancellation token needs to reach the
// pipeline itself.
func (s *Scheduler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.cancel()
	s.group.Wait()
	logx.Info("render scheduler stopped")
}

func (s *Scheduler) runPass(ctx context.Context, msgs []Message, selectedID string, settings privacy.Settings) {
	defer rescue.RecoverCtx(ctx, func() { renderPanics.Inc() })

	for _, m := range msgs {
		if m.ID == selectedID {
			s.renderOne(ctx, m, settings, "selected")
		}
	}

	for _, m := range msgs {
		if m.ID == selectedID {
			continue
		}
		if s.ctx.Err() != nil {
			return
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(s.ctx); err != nil {
				return
			}
		}
		s.renderOne(ctx, m, settings, "backfill")
	}

	if settings.BlockTrackingPixels && s.onReport != nil && s.ctx.Err() == nil {
		bodies := make([]string, 0, len(msgs))
		for _, m := range msgs {
			bodies = append(bodies, m.RawBody)
		}
		report := tracker.Detect(bodies)
		logx.WithContext(ctx).Infow("tracker report published",
			logx.Field("vendors", report.Count))
		s.onReport(report)
	}
}

func (s *Scheduler) renderOne(ctx context.Context, m Message, settings privacy.Settings, kind string) {
	if _, ready := s.cache.Lookup(m.ID); ready {
		return
	}

	body := s.worker.Render(ctx, m.ID, m.RawBody, settings)
	if s.ctx.Err() != nil {
		// View torn down while rendering; drop the result.
		return
	}

	// Publish refuses the write when a newer pass has rebound the cache to
	// different settings; this pass's remaining work is then wasted but
	// harmless.
	if !s.cache.Publish(m.ID, body, settings) {
		return
	}
	renderCompleted.Inc(kind)
	if s.onReady != nil {
		s.onReady(m.ID)
	}
}
