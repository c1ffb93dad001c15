/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

import (
	"sync"
)

// Value is an observable container. Replacing the whole value with Set is the only way to
// change it, so subscribers always see a complete value and never a partial update.
//
// Subscribers are called synchronously, in the order they subscribed, and never see an older
// value after a newer one. A subscriber may subscribe or unsubscribe from inside its callback
// but must not call Set on the store that is notifying it.
type Value[T any] struct {
	notifyMu sync.Mutex // serializes Set so notifications arrive in replacement order

	mu          sync.RWMutex
	current     T
	version     uint64
	nextID      uint64
	subscribers []*subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)

	mu   sync.Mutex
	seen uint64
}

// deliver calls fn unless the subscriber was already given this version or a newer one.
func (s *subscriber[T]) deliver(value T, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version <= s.seen {
		return
	}
	s.seen = version
	s.fn(value)
}

// New creates a store holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, version: 1}
}

// Get returns the latest value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the value and notifies every subscriber.
func (v *Value[T]) Set(value T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.current = value
	v.version++
	version := v.version
	subs := make([]*subscriber[T], len(v.subscribers))
	copy(subs, v.subscribers)
	v.mu.Unlock()

	for _, s := range subs {
		s.deliver(value, version)
	}
}

// Subscribe registers fn and immediately calls it with the current value, unless a
// concurrent Set has already handed it a newer one. The returned function removes the
// subscription; calling it more than once is harmless.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	v.nextID++
	s := &subscriber[T]{id: v.nextID, fn: fn}
	v.subscribers = append(v.subscribers, s)
	current, version := v.current, v.version
	v.mu.Unlock()

	s.deliver(current, version)

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, sub := range v.subscribers {
			if sub.id == s.id {
				v.subscribers = append(v.subscribers[:i:i], v.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subscribers)
}
