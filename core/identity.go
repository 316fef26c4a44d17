package core

import "sync"

// IdentitySignal holds the id of the currently signed-in user, if any, and
// notifies subscribers whenever it changes. Authentication itself is handled
// elsewhere; consumers only ever see "current user id, or none".
type IdentitySignal struct {
	mu        sync.Mutex
	current   string
	nextID    int
	listeners []identityListener
}

type identityListener struct {
	id int
	fn func(id string, ok bool)
}

func NewIdentitySignal() *IdentitySignal {
	return &IdentitySignal{}
}

// Current returns the current user id; ok is false when no user is signed in.
func (s *IdentitySignal) Current() (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != ""
}

// Set changes the current identity and notifies subscribers.
// Setting the same id again is a no-op. Set("") is equivalent to Clear.
func (s *IdentitySignal) Set(id string) {
	s.mu.Lock()
	if id == s.current {
		s.mu.Unlock()
		return
	}
	s.current = id
	listeners := make([]identityListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	// notify without holding the lock so listeners may call Current
	for _, l := range listeners {
		l.fn(id, id != "")
	}
}

// Clear drops the current identity (sign-out) and notifies subscribers.
func (s *IdentitySignal) Clear() {
	s.Set("")
}

// Subscribe registers fn to be called synchronously, in registration order,
// on every identity change. The returned cancel func unregisters it.
func (s *IdentitySignal) Subscribe(fn func(id string, ok bool)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, identityListener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}
