package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrListenerFailure is returned by Update when a listener fails.
	ErrListenerFailure = errors.New("store: listener failed")

	// ErrMergeFailure is returned by UpdateFrom for values that are not mappings.
	ErrMergeFailure = errors.New("store: value is not a mapping")
)

// State is the application state: a mapping from top-level key to value.
type State map[string]any

// Clone returns a shallow copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a new State holding s overlaid with partial. Top-level keys of
// partial win; nested values are not merged.
func (s State) Merge(partial State) State {
	out := make(State, len(s)+len(partial))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Listener observes every revision of the state, in order.
type Listener func(State) error

// Pass describes one notification pass, for observers.
type Pass struct {
	Revision  uint64
	Listeners int // listeners invoked, including a failing one
	Queued    int // partials still waiting when the pass ended
	Start     time.Time
	Duration  time.Duration
	Err       error
}

// ListenerError reports the listener that aborted a notification pass.
type ListenerError struct {
	Revision uint64
	Index    int // registration index of the failing listener
	Dropped  int // queued partials discarded with the pass
	Err      error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	if e.Dropped > 0 {
		return fmt.Sprintf("%s: revision %d, listener %d (%d queued updates dropped): %v",
			ErrListenerFailure, e.Revision, e.Index, e.Dropped, e.Err)
	}
	return fmt.Sprintf("%s: revision %d, listener %d: %v", ErrListenerFailure, e.Revision, e.Index, e.Err)
}

// Unwrap exposes both ErrListenerFailure and the listener's own error.
func (e *ListenerError) Unwrap() []error {
	return []error{ErrListenerFailure, e.Err}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers fn to be called after every notification pass.
func WithObserver(fn func(Pass)) Option {
	return func(s *Store) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// Store holds application state and notifies listeners of every change.
//
// Notification is single-flight: an Update issued by a listener while a pass
// is running is queued and delivered as its own revision once the current
// pass completes. Listeners therefore never recurse into one another, and
// every revision reaches every listener in registration order.
//
// Update and UpdateFrom must be called from one goroutine at a time: the one
// driving the app, including listeners running on it. A queued partial is
// only reported through the error of the Update that started the pass.
// Read, Revision and Subscribe are safe from any goroutine.
type Store struct {
	mu        sync.Mutex
	state     State
	revision  uint64
	listeners []Listener
	pending   []State
	notifying bool

	logger    *slog.Logger
	observers []func(Pass)
}

// New creates a Store holding a copy of initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:  initial.Clone(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the current state. During a notification pass it returns the
// revision being delivered. The returned map is shared; treat it as read-only.
func (s *Store) Read() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Revision returns the number of merges applied so far.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Subscribe appends fn to the listener list. There is no unsubscribe.
// A listener added during a pass first sees the next revision.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Update shallow-merges partial into the state and notifies every listener,
// in registration order, with the new state. An empty partial still produces
// a revision and a full notification pass.
//
// If a pass is already running the partial is queued and Update returns nil
// immediately. The call that started the pass delivers queued revisions and
// returns the first listener failure; a failure discards the revisions still
// queued behind it and counts them in ListenerError.Dropped.
func (s *Store) Update(partial State) error {
	s.mu.Lock()
	s.pending = append(s.pending, partial)
	if s.notifying {
		depth := len(s.pending)
		s.mu.Unlock()
		s.logger.Debug("store update queued", "depth", depth)
		return nil
	}
	s.notifying = true
	s.mu.Unlock()

	return s.drain()
}

// UpdateFrom merges a State, any map keyed by strings, or a struct (decoded
// with mapstructure tags). Other values fail with ErrMergeFailure.
func (s *Store) UpdateFrom(v any) error {
	partial, err := toState(v)
	if err != nil {
		return err
	}
	return s.Update(partial)
}

// Decode copies the current state into out, which must be a pointer to a
// struct or map. Fields are matched by mapstructure tags.
func (s *Store) Decode(out any) error {
	return Decode(s.Read(), out)
}

// Decode copies st into out, which must be a pointer to a struct or map.
// Fields are matched by mapstructure tags; fields with no key in st keep
// their current values. Numeric kinds convert into one another.
func Decode(st State, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("store: decode: %w", err)
	}
	if err := dec.Decode(map[string]any(st)); err != nil {
		return fmt.Errorf("store: decode: %w", err)
	}
	return nil
}

func (s *Store) drain() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.reset()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.notifying = false
			s.mu.Unlock()
			return nil
		}
		partial := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]

		s.state = s.state.Merge(partial)
		s.revision++
		rev, state := s.revision, s.state
		listeners := make([]Listener, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		if err := s.notify(rev, state, listeners); err != nil {
			dropped := s.reset()
			if dropped > 0 {
				err.Dropped = dropped
				s.logger.Warn("store pass aborted; queued updates dropped", "revision", rev, "dropped", dropped)
			}
			return err
		}
	}
}

func (s *Store) notify(rev uint64, state State, listeners []Listener) *ListenerError {
	start := time.Now()
	invoked := 0
	var err *ListenerError
	for i, fn := range listeners {
		invoked++
		if lerr := fn(state); lerr != nil {
			err = &ListenerError{Revision: rev, Index: i, Err: lerr}
			s.logger.Error("store listener failed", "revision", rev, "listener", i, "error", lerr)
			break
		}
	}

	if len(s.observers) > 0 {
		s.mu.Lock()
		queued := len(s.pending)
		s.mu.Unlock()
		p := Pass{
			Revision:  rev,
			Listeners: invoked,
			Queued:    queued,
			Start:     start,
			Duration:  time.Since(start),
		}
		if err != nil {
			p.Err = err
		}
		for _, obs := range s.observers {
			obs(p)
		}
	}
	return err
}

// reset ends the current pass and returns how many queued partials it dropped.
func (s *Store) reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := len(s.pending)
	s.pending = nil
	s.notifying = false
	return dropped
}

func toState(v any) (State, error) {
	switch val := v.(type) {
	case State:
		return val, nil
	case map[string]any:
		return State(val), nil
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrMergeFailure)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrMergeFailure, v)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %T has non-string keys", ErrMergeFailure, v)
		}
		out := make(State, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Struct:
		out := make(map[string]any)
		if err := mapstructure.Decode(rv.Interface(), &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMergeFailure, err)
		}
		return State(out), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrMergeFailure, v)
	}
}
