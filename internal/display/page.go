package display

import (
	"sort"
	"sync"
	"time"
)

const subscriberBuffer = 100

// Page is an in-memory [Display] that also implements [Feed].
//
// Writes replace the slot's previous text (last write wins). Subscribers
// receive updates via buffered channels; if a subscriber's buffer is full
// the update is dropped for that subscriber rather than blocking the writer.
type Page struct {
	mu    sync.RWMutex
	slots map[string]Update
	now   func() time.Time

	subMu       sync.RWMutex
	subscribers map[chan Update]struct{}
}

// NewPage creates a page with the given slots showing [Placeholder].
// Slots that are not declared up front are created on first write.
func NewPage(slots ...string) *Page {
	p := &Page{
		slots:       make(map[string]Update, len(slots)),
		now:         time.Now,
		subscribers: make(map[chan Update]struct{}),
	}
	for _, s := range slots {
		p.slots[s] = Update{Slot: s, Text: Placeholder}
	}
	return p
}

// SetText stores the text for a slot and notifies subscribers.
func (p *Page) SetText(slot, text string) {
	u := Update{Slot: slot, Text: text, UpdatedAt: p.now()}

	p.mu.Lock()
	p.slots[slot] = u
	p.mu.Unlock()

	p.notifySubscribers(u)
}

// Text returns the current text of a slot.
func (p *Page) Text(slot string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.slots[slot]
	return u.Text, ok
}

// Snapshot returns a copy of all slots ordered by slot name.
func (p *Page) Snapshot() []Update {
	p.mu.RLock()
	out := make([]Update, 0, len(p.slots))
	for _, u := range p.slots {
		out = append(out, u)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// Subscribe creates a subscription with a buffer of 100 updates.
//
// Caller must call [Page.Unsubscribe] when done.
func (p *Page) Subscribe() <-chan Update {
	ch := make(chan Update, subscriberBuffer)

	p.subMu.Lock()
	p.subscribers[ch] = struct{}{}
	p.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
// Safe to call multiple times or with an unknown channel.
func (p *Page) Unsubscribe(ch <-chan Update) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	for subCh := range p.subscribers {
		if subCh == ch {
			delete(p.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

func (p *Page) notifySubscribers(u Update) {
	p.subMu.RLock()
	defer p.subMu.RUnlock()

	for ch := range p.subscribers {
		select {
		case ch <- u:
		default:
			// slow subscriber, drop
		}
	}
}
