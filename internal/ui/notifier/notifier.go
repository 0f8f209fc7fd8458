// Package notifier fans out file-change events to the browsers waiting on
// the dev reload stream.
package notifier

import "sync"

// Change describes an edited source file.
type Change struct {
	Path string
}

// Notifier broadcasts changes to every subscriber.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Change]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Change]struct{}),
	}
}

// Subscribe returns a channel that receives changes.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Change {
	ch := make(chan Change, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Change) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Len reports the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast delivers c to every listener without blocking. A listener that
// has not drained its previous change skips this one; it reloads anyway.
func (n *Notifier) Broadcast(c Change) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- c:
		default:
		}
	}
}
