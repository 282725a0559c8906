package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/abinijav/absensi-digital/internal/ctxutil"
	"github.com/abinijav/absensi-digital/internal/db"
	"github.com/abinijav/absensi-digital/internal/models"
)

// SQLStore adapts the db package to the gate's Store interface,
// applying the standard DB timeout on every call.
type SQLStore struct {
	DB *sql.DB
}

func (s SQLStore) Get(ctx context.Context, nis, date string) (*models.AttendanceRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.GetAttendance(ctx, s.DB, nis, date)
}

func (s SQLStore) InsertCheckIn(ctx context.Context, rec models.AttendanceRecord) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.InsertCheckIn(ctx, s.DB, rec)
}

func (s SQLStore) UpdateCheckOut(ctx context.Context, id int64, timeOut time.Time, selfieURL string, lat, lng float64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.UpdateCheckOut(ctx, s.DB, id, timeOut, selfieURL, lat, lng)
}

func (s SQLStore) Upsert(ctx context.Context, rec models.AttendanceRecord) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.UpsertAttendance(ctx, s.DB, rec)
}
