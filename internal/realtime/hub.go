package realtime

import (
	"sync"

	"github.com/abinijav/absensi-digital/internal/models"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event is one change on the attendance table.
type Event struct {
	Op     Op
	Record models.AttendanceRecord
}

type subscription struct {
	date string
	fn   func(Event)
}

// Hub fans attendance changes out to report views. Subscriptions are
// filtered by the record's date, matching the store-side
// "date=eq.X" channel the views are built around.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]subscription)}
}

// Subscribe registers fn for events on the given date and returns the
// release function. A view owns at most one live handle and must call
// release on refilter or teardown; calling it twice is harmless.
func (h *Hub) Subscribe(date string, fn func(Event)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = subscription{date: date, fn: fn}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	var fns []func(Event)
	for _, s := range h.subs {
		if s.date == ev.Record.Date {
			fns = append(fns, s.fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
