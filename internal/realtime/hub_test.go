package realtime

import (
	"testing"

	"github.com/abinijav/absensi-digital/internal/models"
)

func TestPublishFiltersByDate(t *testing.T) {
	h := NewHub()

	var today, tomorrow int
	relA := h.Subscribe("2026-03-09", func(Event) { today++ })
	relB := h.Subscribe("2026-03-10", func(Event) { tomorrow++ })
	defer relA()
	defer relB()

	h.Publish(Event{Op: OpInsert, Record: models.AttendanceRecord{UserNIS: "1", Date: "2026-03-09"}})
	h.Publish(Event{Op: OpUpdate, Record: models.AttendanceRecord{UserNIS: "1", Date: "2026-03-09"}})
	h.Publish(Event{Op: OpInsert, Record: models.AttendanceRecord{UserNIS: "2", Date: "2026-03-10"}})

	if today != 2 || tomorrow != 1 {
		t.Fatalf("today=%d tomorrow=%d, want 2/1", today, tomorrow)
	}
}

func TestReleaseStopsDelivery(t *testing.T) {
	h := NewHub()

	var n int
	release := h.Subscribe("2026-03-09", func(Event) { n++ })

	h.Publish(Event{Record: models.AttendanceRecord{Date: "2026-03-09"}})
	release()
	release() // second call is a no-op
	h.Publish(Event{Record: models.AttendanceRecord{Date: "2026-03-09"}})

	if n != 1 {
		t.Fatalf("deliveries = %d, want 1", n)
	}
}

func TestSubscribeDuringPublish(t *testing.T) {
	h := NewHub()

	// a handler adding a subscription must not deadlock
	var inner int
	release := h.Subscribe("2026-03-09", func(Event) {
		r := h.Subscribe("2026-03-10", func(Event) { inner++ })
		defer r()
	})
	defer release()

	h.Publish(Event{Record: models.AttendanceRecord{Date: "2026-03-09"}})
	if inner != 0 {
		t.Fatalf("inner = %d", inner)
	}
}
