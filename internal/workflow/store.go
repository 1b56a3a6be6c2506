package workflow

import "sync"

// Listener is notified with the new state after every dispatch.
type Listener func(State)

type subscription struct {
	id       int
	listener Listener
}

// Store holds the workflow state and serializes transitions.
type Store struct {
	mu            sync.Mutex
	state         State
	subscriptions []subscription
	nextID        int
}

// NewStore creates a store in the idle phase.
func NewStore() *Store {
	return &Store{state: State{Phase: PhaseIdle}}
}

// GetState returns a copy of the current state.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Subscribe registers l and returns a function removing it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscriptions = append(s.subscriptions, subscription{id: id, listener: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies action and notifies listeners outside the lock,
// so a listener may dispatch again.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	state := s.state.Clone()
	listeners := make([]Listener, 0, len(s.subscriptions))

	for _, sub := range s.subscriptions {
		listeners = append(listeners, sub.listener)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(state.Clone())
	}

	return state
}
