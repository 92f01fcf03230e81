package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

const jobsPerWorker = 16

// ViewBuilder derives the current delivery list of an actor.
type ViewBuilder interface {
	Views(ctx context.Context, actorID int64) ([]model.DeliveryOrderView, error)
}

// ChangeSource pushes ids of delivery actors whose orders changed.
type ChangeSource interface {
	Listen(ctx context.Context, notify func(actorID int64)) error
}

// Token identifies a subscription.
type Token uint64

// Callback receives a freshly derived delivery list.
type Callback func(views []model.DeliveryOrderView)

// FeedDispatcher rebuilds delivery lists on change and pushes them to subscribers.
// Every actor is served by one worker, so callbacks of an actor never run concurrently
// and lists arrive in the order they were derived.
type FeedDispatcher struct {
	views           ViewBuilder
	source          ChangeSource
	refreshInterval time.Duration
	logger          *slog.Logger

	jobs   []chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu          sync.Mutex
	next        Token
	subscribers map[int64]map[Token]Callback
	owners      map[Token]int64
	pending     map[int64]bool
}

// NewFeedDispatcher constructs dispatcher worker pool. source may be nil.
func NewFeedDispatcher(views ViewBuilder, source ChangeSource, refreshInterval time.Duration, workers int, logger *slog.Logger) *FeedDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	jobs := make([]chan int64, workers)
	for i := range jobs {
		jobs[i] = make(chan int64, jobsPerWorker)
	}
	return &FeedDispatcher{
		views:           views,
		source:          source,
		refreshInterval: refreshInterval,
		logger:          logger,
		jobs:            jobs,
		subscribers:     make(map[int64]map[Token]Callback),
		owners:          make(map[Token]int64),
		pending:         make(map[int64]bool),
	}
}

// Start launches workers, the refresh loop and the change source.
func (d *FeedDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for _, jobs := range d.jobs {
		d.wg.Add(1)
		go d.worker(runCtx, jobs)
	}

	if d.refreshInterval > 0 {
		d.wg.Add(1)
		go d.refresh(runCtx)
	}

	if d.source != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.source.Listen(runCtx, d.Notify); err != nil {
				d.logger.Error("order change source stopped", slog.String("error", err.Error()))
			}
		}()
	}
}

// Stop cancels background processing and waits for all goroutines.
func (d *FeedDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Subscribe registers cb for actorID. The current list is pushed right away.
func (d *FeedDispatcher) Subscribe(actorID int64, cb Callback) Token {
	d.mu.Lock()
	d.next++
	token := d.next
	if d.subscribers[actorID] == nil {
		d.subscribers[actorID] = make(map[Token]Callback)
	}
	d.subscribers[actorID][token] = cb
	d.owners[token] = actorID
	d.mu.Unlock()

	d.Notify(actorID)
	return token
}

// Unsubscribe releases the subscription. Unknown tokens are ignored.
func (d *FeedDispatcher) Unsubscribe(token Token) {
	d.mu.Lock()
	defer d.mu.Unlock()

	actorID, ok := d.owners[token]
	if !ok {
		return
	}
	delete(d.owners, token)
	delete(d.subscribers[actorID], token)
	if len(d.subscribers[actorID]) == 0 {
		delete(d.subscribers, actorID)
	}
}

// Subscribers returns the number of live subscriptions of actorID.
func (d *FeedDispatcher) Subscribers(actorID int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subscribers[actorID])
}

// Notify schedules a rebuild for actorID. Notifications for actors without
// subscribers are dropped; repeated ones collapse while a rebuild is queued.
func (d *FeedDispatcher) Notify(actorID int64) {
	d.mu.Lock()
	if len(d.subscribers[actorID]) == 0 || d.pending[actorID] {
		d.mu.Unlock()
		return
	}
	d.pending[actorID] = true
	d.mu.Unlock()

	select {
	case d.jobs[d.shard(actorID)] <- actorID:
	default:
		d.mu.Lock()
		delete(d.pending, actorID)
		d.mu.Unlock()
		d.logger.Warn("feed queue full, rebuild deferred", slog.Int64("actor_id", actorID))
	}
}

func (d *FeedDispatcher) shard(actorID int64) int {
	n := int64(len(d.jobs))
	return int(((actorID % n) + n) % n)
}

func (d *FeedDispatcher) refresh(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, actorID := range d.subscribedActors() {
				d.Notify(actorID)
			}
		}
	}
}

func (d *FeedDispatcher) subscribedActors() []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	actors := make([]int64, 0, len(d.subscribers))
	for actorID := range d.subscribers {
		actors = append(actors, actorID)
	}
	return actors
}

func (d *FeedDispatcher) worker(ctx context.Context, jobs <-chan int64) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case actorID := <-jobs:
			d.deliver(ctx, actorID)
		}
	}
}

func (d *FeedDispatcher) deliver(ctx context.Context, actorID int64) {
	d.mu.Lock()
	delete(d.pending, actorID)
	d.mu.Unlock()

	views, err := d.views.Views(ctx, actorID)
	if err != nil {
		if ctx.Err() == nil {
			d.logger.Error("rebuild delivery list failed",
				slog.Int64("actor_id", actorID),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	for _, cb := range d.callbacks(actorID) {
		cb(views)
	}
}

func (d *FeedDispatcher) callbacks(actorID int64) []Callback {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]Callback, 0, len(d.subscribers[actorID]))
	for _, cb := range d.subscribers[actorID] {
		result = append(result, cb)
	}
	return result
}
