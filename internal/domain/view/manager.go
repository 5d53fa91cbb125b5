package view

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/internal/providers/generation"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
	"go.uber.org/zap"
)

const (
	DefaultFetchTimeout = 60 * time.Second
	subscriberBuffer    = 8
)

// Manager orchestrates view lifecycle
type Manager struct {
	mu        sync.RWMutex
	views     map[id.ViewID]*entry // Protected by mu
	catalog   *catalog.Catalog
	generator generation.Generator
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	timeout   time.Duration
	model     string
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type entry struct {
	view        View
	fetching    bool
	cancelFetch context.CancelFunc
	subscribers map[int]chan Event
	nextSub     int
}

// NewManager creates a view manager that resolves ideas from cat and fetches
// content through gen.
func NewManager(cat *catalog.Catalog, gen generation.Generator, logger *zap.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		views:     make(map[id.ViewID]*entry),
		catalog:   cat,
		generator: gen,
		logger:    logger.Named("view"),
		timeout:   DefaultFetchTimeout,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithTimeout bounds every fetch. Non-positive values keep the default.
func (m *Manager) WithTimeout(timeout time.Duration) *Manager {
	if timeout > 0 {
		m.timeout = timeout
	}
	return m
}

// WithModel sets the model name stamped on generated views.
func (m *Manager) WithModel(model string) *Manager {
	m.model = model
	return m
}

// Open creates a view for an idea and starts its single content fetch.
func (m *Manager) Open(ideaID string) (View, error) {
	idea, err := m.catalog.Get(ideaID)
	if err != nil {
		return View{}, err
	}

	now := m.now()
	e := &entry{
		view: View{
			ID:        id.NewViewID(),
			Idea:      idea,
			State:     StateLoading,
			Label:     StateLoading.Label(),
			Model:     m.model,
			OpenedAt:  now,
			UpdatedAt: now,
		},
		subscribers: make(map[int]chan Event),
	}

	m.mu.Lock()
	m.views[e.view.ID] = e
	m.startFetch(e)
	snapshot := e.view.clone()
	active := len(m.views)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncViewsOpened()
		m.metrics.SetViewsActive(active)
	}
	m.logger.Info("View opened",
		zap.String("view_id", snapshot.ID.String()),
		zap.String("idea_id", idea.ID),
		zap.String("title", idea.Title),
	)
	return snapshot, nil
}

// Retry discards the view's content and fetches it again. It fails with
// ErrFetchInFlight while a fetch is running.
func (m *Manager) Retry(viewID id.ViewID) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.views[viewID]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrNotFound, viewID)
	}
	if e.fetching {
		return View{}, ErrFetchInFlight
	}

	e.view.Blocks = nil
	e.view.Error = ""
	e.view.GeneratedAt = nil
	m.setState(e, StateLoading)
	m.startFetch(e)

	m.logger.Info("View retry", zap.String("view_id", viewID.String()), zap.Int("attempt", e.view.Attempts))
	return e.view.clone(), nil
}

// startFetch must be called with mu held.
func (m *Manager) startFetch(e *entry) {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	e.fetching = true
	e.cancelFetch = cancel
	e.view.Attempts++

	m.wg.Add(1)
	go m.fetch(ctx, cancel, e, e.view.Idea.Title)
}

func (m *Manager) fetch(ctx context.Context, cancel context.CancelFunc, e *entry, title string) {
	defer m.wg.Done()
	defer cancel()

	start := m.now()
	text, err := m.generator.Generate(ctx, title)

	var blocks []blueprint.Block
	if err == nil {
		blocks = blueprint.Parse(text)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	viewID := e.view.ID
	if current, ok := m.views[viewID]; !ok || current != e {
		m.recordFetch("cancelled")
		m.logger.Debug("Dropping result for closed view", zap.String("view_id", viewID.String()))
		return
	}

	e.fetching = false
	e.cancelFetch = nil

	if err != nil {
		e.view.Error = generation.UserMessage(err)
		m.setState(e, StateFailed)
		m.recordFetch("failed")
		m.logger.Warn("Blueprint fetch failed",
			zap.String("view_id", viewID.String()),
			zap.String("kind", string(generation.KindOf(err))),
			zap.Duration("duration", m.now().Sub(start)),
			zap.Error(err),
		)
		return
	}

	generatedAt := m.now()
	e.view.Blocks = blocks
	e.view.GeneratedAt = &generatedAt
	m.setState(e, StateReady)
	m.recordFetch("ready")
	if m.metrics != nil {
		counts := make(map[string]int)
		for kind, n := range blueprint.Tally(blocks) {
			counts[string(kind)] = n
		}
		m.metrics.RecordBlocks(counts)
	}
	m.logger.Info("Blueprint ready",
		zap.String("view_id", viewID.String()),
		zap.Int("blocks", len(blocks)),
		zap.Duration("duration", m.now().Sub(start)),
	)
}

// setState must be called with mu held. It notifies subscribers without
// blocking; a full subscriber buffer drops the event.
func (m *Manager) setState(e *entry, state State) {
	e.view.State = state
	e.view.Label = state.Label()
	e.view.UpdatedAt = m.now()

	event := eventOf(e.view)
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (m *Manager) recordFetch(outcome string) {
	if m.metrics != nil {
		m.metrics.RecordViewFetch(outcome)
	}
}

// Get retrieves a view by ID
func (m *Manager) Get(viewID id.ViewID) (View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.views[viewID]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrNotFound, viewID)
	}
	return e.view.clone(), nil
}

// Dashboard recomputes the numeric panel of a view's idea.
func (m *Manager) Dashboard(viewID id.ViewID) (venture.Dashboard, error) {
	v, err := m.Get(viewID)
	if err != nil {
		return venture.Dashboard{}, err
	}
	if m.metrics != nil {
		m.metrics.IncDashboards()
	}
	return v.Dashboard(), nil
}

// List returns all views, oldest first, optionally filtered by state
func (m *Manager) List(state *State) []View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	views := make([]View, 0, len(m.views))
	for _, e := range m.views {
		if state == nil || e.view.State == *state {
			views = append(views, e.view.clone())
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].ID < views[j].ID
	})
	return views
}

// Close removes a view, cancelling its in-flight fetch and ending its
// subscriptions.
func (m *Manager) Close(viewID id.ViewID) error {
	m.mu.Lock()
	e, ok := m.views[viewID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, viewID)
	}

	delete(m.views, viewID)
	if e.cancelFetch != nil {
		e.cancelFetch()
	}
	for key, ch := range e.subscribers {
		delete(e.subscribers, key)
		close(ch)
	}
	active := len(m.views)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetViewsActive(active)
	}
	m.logger.Info("View closed", zap.String("view_id", viewID.String()))
	return nil
}

// Subscribe returns a channel of state events for a view, primed with its
// current state, and a function that ends the subscription. The channel is
// closed when either the subscription or the view ends.
func (m *Manager) Subscribe(viewID id.ViewID) (<-chan Event, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.views[viewID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, viewID)
	}

	ch := make(chan Event, subscriberBuffer)
	ch <- eventOf(e.view)

	key := e.nextSub
	e.nextSub++
	e.subscribers[key] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := e.subscribers[key]; ok {
				delete(e.subscribers, key)
				close(sub)
			}
		})
	}
	return ch, unsubscribe, nil
}

// Stats returns view counts per state.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Total: len(m.views)}
	for _, e := range m.views {
		switch e.view.State {
		case StateLoading:
			stats.Loading++
		case StateReady:
			stats.Ready++
		case StateFailed:
			stats.Failed++
		}
	}
	return stats
}

// Shutdown cancels every in-flight fetch and waits for the fetch goroutines
// to return or ctx to end.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("view fetches still running"), ctx.Err())
	}
}
