// Package observe provides synchronous observer lists used to publish value
// transitions to interested parties.
package observe

import "sync"

// Subject delivers published values to its subscribers in subscription
// order. Publish calls subscribers on the calling goroutine, without holding
// any internal lock, so subscribers may subscribe, cancel or publish again.
type Subject[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns function removing it. Calling returned
// function more than once is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends v to snapshot of current subscribers.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len returns number of active subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
