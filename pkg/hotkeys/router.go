// Package hotkeys routes key presses to whichever component currently
// listens for them and holds the catalog's key bindings.
package hotkeys

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a key press. It reports whether it consumed the key.
type Handler func(msg tea.KeyMsg) (bool, tea.Cmd)

type subscription struct {
	id      uint64
	handler Handler
}

// Router is a global key router. The most recent subscriber sees a key
// first and stops propagation by consuming it.
type Router struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{}
}

// Subscribe registers h and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (r *Router) Subscribe(h Handler) (unsubscribe func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, handler: h})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Router) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions
func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Dispatch offers msg to subscribers, newest first, until one consumes it
func (r *Router) Dispatch(msg tea.KeyMsg) (bool, tea.Cmd) {
	r.mu.Lock()
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		if handled, cmd := subs[i].handler(msg); handled {
			return true, cmd
		}
	}
	return false, nil
}

// Matches reports whether msg triggers binding
func Matches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
