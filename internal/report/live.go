package report

import (
	"context"
	"sync"
	"time"

	"github.com/abinijav/absensi-digital/internal/metrics"
	"github.com/abinijav/absensi-digital/internal/realtime"
	"go.uber.org/zap"
)

// LiveDaily keeps one daily report current against attendance events.
// A view holds a single LiveDaily; changing the filter or date replaces
// the subscription rather than stacking a second one.
type LiveDaily struct {
	Gen      *Generator
	Hub      *realtime.Hub
	Log      *zap.SugaredLogger
	OnChange func([]Row)

	mu      sync.Mutex
	release func()
	pop     Population
	date    string
	rows    []Row
}

// SetFilter points the view at a new population and date. The current
// rows are regenerated immediately and the event subscription moves to
// the new date.
func (l *LiveDaily) SetFilter(ctx context.Context, p Population, date string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.Gen.Daily(ctx, p, date)
	if err != nil {
		return err
	}
	l.pop, l.date, l.rows = p, date, rows

	if l.release != nil {
		l.release()
	}
	l.release = l.Hub.Subscribe(date, func(realtime.Event) {
		l.regenerate()
	})

	if l.OnChange != nil {
		l.OnChange(rows)
	}
	return nil
}

// regenerate rebuilds the rows after an event. A failed rebuild keeps
// the previous rows on screen; the next event retries.
func (l *LiveDaily) regenerate() {
	l.mu.Lock()
	p, date := l.pop, l.date
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rows, err := l.Gen.Daily(ctx, p, date)
	if err != nil {
		metrics.ReportErrors.Inc()
		if l.Log != nil {
			l.Log.Warnw("live report refresh failed", "date", date, "err", err)
		}
		return
	}

	l.mu.Lock()
	if l.date != date {
		// filter changed while we were querying
		l.mu.Unlock()
		return
	}
	l.rows = rows
	l.mu.Unlock()

	if l.OnChange != nil {
		l.OnChange(rows)
	}
}

// Rows returns the last successfully generated snapshot.
func (l *LiveDaily) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows
}

// Close drops the event subscription. Safe to call twice.
func (l *LiveDaily) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.release != nil {
		l.release()
		l.release = nil
	}
}
