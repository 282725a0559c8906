package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/abinijav/absensi-digital/internal/metrics"
	"github.com/abinijav/absensi-digital/internal/models"
	"github.com/abinijav/absensi-digital/internal/realtime"
	"github.com/abinijav/absensi-digital/internal/storage"
)

type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator is the geolocation provider contract. Denied, unsupported
// and unavailable all come back as errors.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (Position, error) { return f(ctx) }

// Store is the slice of the attendance table the gate needs.
type Store interface {
	Get(ctx context.Context, nis, date string) (*models.AttendanceRecord, error)
	InsertCheckIn(ctx context.Context, rec models.AttendanceRecord) (int64, error)
	UpdateCheckOut(ctx context.Context, id int64, timeOut time.Time, selfieURL string, lat, lng float64) error
	Upsert(ctx context.Context, rec models.AttendanceRecord) error
}

// Gate validates and records one attendance event at a time: window
// check, state check, location, selfie upload, then exactly one row
// write. Upload and row write are sequential, not transactional; a
// write failure after a successful upload orphans the photo.
type Gate struct {
	Store    Store
	Selfies  storage.Store
	Locate   Locator
	Settings func() *models.TimeSettings
	Now      func() time.Time
	Events   *realtime.Hub // optional
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Gate) settings() *models.TimeSettings {
	if g.Settings == nil {
		return nil
	}
	return g.Settings()
}

func reject(reason string, err error) error {
	metrics.GateRejections.WithLabelValues(reason).Inc()
	return err
}

// CheckIn records today's arrival for user. The photo is the already
// captured selfie; the gate owns everything after capture.
func (g *Gate) CheckIn(ctx context.Context, user models.User, photo []byte) (*models.AttendanceRecord, error) {
	s := g.settings()
	if s == nil {
		return nil, reject("config_not_ready", ErrConfigNotReady)
	}
	now := g.now()
	start, end := s.CheckinWindow(user.Role)
	if h := now.Hour(); h < start || h >= end {
		return nil, reject("outside_window", ErrOutsideWindow)
	}

	date := models.DateString(now)
	existing, err := g.Store.Get(ctx, user.NIS, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	if existing != nil {
		return nil, reject("already_checked_in", ErrAlreadyCheckedIn)
	}

	pos, err := g.Locate.CurrentPosition(ctx)
	if err != nil {
		return nil, reject("no_location", fmt.Errorf("%w: %v", ErrLocationUnavailable, err))
	}

	url, err := g.uploadSelfie(ctx, user.NIS, date, "in", photo)
	if err != nil {
		return nil, err
	}

	rec := models.AttendanceRecord{
		UserNIS:     user.NIS,
		Name:        user.Name,
		Class:       user.Class,
		Date:        date,
		TimeIn:      &now,
		SelfieInURL: &url,
		LatitudeIn:  &pos.Latitude,
		LongitudeIn: &pos.Longitude,
		Status:      models.Hadir,
	}
	id, err := g.Store.InsertCheckIn(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	rec.ID = id

	metrics.CheckIns.Inc()
	g.publish(realtime.OpInsert, rec)
	return &rec, nil
}

// CheckOut completes today's record. Never inserts: it updates the row
// the check-in created, by id.
func (g *Gate) CheckOut(ctx context.Context, user models.User, photo []byte) (*models.AttendanceRecord, error) {
	s := g.settings()
	if s == nil {
		return nil, reject("config_not_ready", ErrConfigNotReady)
	}
	now := g.now()
	start, end := s.CheckoutWindow(user.Role)
	if h := now.Hour(); h < start || h >= end {
		return nil, reject("outside_window", ErrOutsideWindow)
	}

	date := models.DateString(now)
	rec, err := g.Store.Get(ctx, user.NIS, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	if rec == nil {
		return nil, reject("not_checked_in", ErrNotCheckedInYet)
	}
	if rec.TimeOut != nil {
		return nil, reject("already_checked_out", ErrAlreadyCheckedOut)
	}

	pos, err := g.Locate.CurrentPosition(ctx)
	if err != nil {
		return nil, reject("no_location", fmt.Errorf("%w: %v", ErrLocationUnavailable, err))
	}

	url, err := g.uploadSelfie(ctx, user.NIS, date, "out", photo)
	if err != nil {
		return nil, err
	}

	if err := g.Store.UpdateCheckOut(ctx, rec.ID, now, url, pos.Latitude, pos.Longitude); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	rec.TimeOut = &now
	rec.SelfieOutURL = &url
	rec.LatitudeOut = &pos.Latitude
	rec.LongitudeOut = &pos.Longitude

	metrics.CheckOuts.Inc()
	g.publish(realtime.OpUpdate, *rec)
	return rec, nil
}

// ManualEntry is the admin escape hatch: any state, any day, written
// as an idempotent upsert on (user_nis, date).
type ManualEntry struct {
	User       models.User
	Date       string
	Status     models.Status
	TimeIn     *time.Time
	TimeOut    *time.Time
	Keterangan string
}

func (g *Gate) RecordManual(ctx context.Context, e ManualEntry) error {
	rec := models.AttendanceRecord{
		UserNIS: e.User.NIS,
		Name:    e.User.Name,
		Class:   e.User.Class,
		Date:    e.Date,
		TimeIn:  e.TimeIn,
		TimeOut: e.TimeOut,
		Status:  e.Status,
	}
	if e.Keterangan != "" {
		rec.Keterangan = &e.Keterangan
	}
	if err := g.Store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	g.publish(realtime.OpUpdate, rec)
	return nil
}

func (g *Gate) uploadSelfie(ctx context.Context, nis, date, direction string, photo []byte) (string, error) {
	path := fmt.Sprintf("%s/%s-%s.jpg", nis, date, direction)
	if err := g.Selfies.Upload(ctx, path, photo, true); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return g.Selfies.PublicURL(path), nil
}

func (g *Gate) publish(op realtime.Op, rec models.AttendanceRecord) {
	if g.Events != nil {
		g.Events.Publish(realtime.Event{Op: op, Record: rec})
	}
}
