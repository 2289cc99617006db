package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Fetcher issues one listing request.
type Fetcher interface {
	ListTasks(ctx context.Context, p Params) (*tasksv1.ListTasksResponse, error)
}

// Snapshot is an immutable view of a Session.
type Snapshot struct {
	State      State
	Term       string
	Tasks      []tasksv1.Task
	Pagination *tasksv1.Pagination
	Err        string
	// Version increases with every transition.
	Version uint64
}

type SessionConfig struct {
	// Base parameters sent with every request; Search is replaced by the current term.
	Params   Params
	Debounce time.Duration
	Clock    Clock
}

// Session is the list client state machine. Every issued fetch is tagged with
// the epoch at issue time, and only the response for the latest epoch is applied.
type Session struct {
	fetcher   Fetcher
	debouncer *Debouncer
	base      Params

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	term       string
	epoch      uint64
	version    uint64
	state      State
	tasks      []tasksv1.Task
	pagination *tasksv1.Pagination
	errMsg     string
	inFlight   context.CancelFunc

	notifyMu     sync.Mutex
	lastNotified uint64
	listener     func(Snapshot)
	closed       atomic.Bool

	wg sync.WaitGroup
}

func NewSession(fetcher Fetcher, cfg SessionConfig) *Session {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		fetcher:   fetcher,
		debouncer: NewDebouncer(cfg.Debounce, cfg.Clock),
		base:      cfg.Params,
		ctx:       ctx,
		cancel:    cancel,
		tasks:     []tasksv1.Task{},
	}
}

// OnChange registers fn to receive every applied transition, in order.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.listener = fn
}

// Start schedules the initial fetch for the current term.
func (s *Session) Start() {
	if s.closed.Load() {
		return
	}
	s.debouncer.Trigger(s.fetchCurrent)
}

// SetSearch records a new term and restarts the quiet period. A pending fetch
// for a superseded term is dropped.
func (s *Session) SetSearch(term string) {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	s.debouncer.Trigger(s.fetchCurrent)
}

// Retry fetches the current term immediately, bypassing the debounce timer.
func (s *Session) Retry() {
	if s.closed.Load() {
		return
	}
	s.debouncer.Cancel()
	s.fetchCurrent()
}

// Close cancels the pending timer and any in-flight request. No transition is
// applied or reported after Close returns.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.debouncer.Cancel()

	s.mu.Lock()
	if s.inFlight != nil {
		s.inFlight()
		s.inFlight = nil
	}
	s.mu.Unlock()
	s.cancel()

	// Wait out a notification that is already being delivered.
	s.notifyMu.Lock()
	s.listener = nil
	s.notifyMu.Unlock()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) fetchCurrent() {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return
	}

	s.epoch++
	epoch := s.epoch
	params := s.base
	params.Search = s.term

	if s.inFlight != nil {
		s.inFlight()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.inFlight = cancel

	s.state = StateLoading
	s.errMsg = ""
	s.version++
	loading := s.snapshotLocked()
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		s.notify(loading)

		resp, err := s.fetcher.ListTasks(ctx, params)
		s.apply(epoch, resp, err)
	}()
}

func (s *Session) apply(epoch uint64, resp *tasksv1.ListTasksResponse, err error) {
	s.mu.Lock()
	if s.closed.Load() || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.inFlight = nil

	if err != nil {
		// Previous tasks stay visible behind the error.
		s.state = StateError
		s.errMsg = errorMessage(err)
	} else {
		s.state = StateSuccess
		s.tasks = resp.Items
		pagination := resp.Pagination
		s.pagination = &pagination
	}
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// notify delivers snap unless a newer snapshot was already delivered or the
// session is closed.
func (s *Session) notify(snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if s.closed.Load() || s.listener == nil || snap.Version <= s.lastNotified {
		return
	}
	s.lastNotified = snap.Version
	s.listener(snap)
}

func (s *Session) snapshotLocked() Snapshot {
	tasks := make([]tasksv1.Task, len(s.tasks))
	copy(tasks, s.tasks)

	var pagination *tasksv1.Pagination
	if s.pagination != nil {
		p := *s.pagination
		pagination = &p
	}

	return Snapshot{
		State:      s.state,
		Term:       s.term,
		Tasks:      tasks,
		Pagination: pagination,
		Err:        s.errMsg,
		Version:    s.version,
	}
}
