package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abinijav/absensi-digital/internal/ctxutil"
	"github.com/abinijav/absensi-digital/internal/db"
	"github.com/abinijav/absensi-digital/internal/export"
	"github.com/abinijav/absensi-digital/internal/models"
)

// ErrPopulationEmpty: the report filter matched zero users.
var ErrPopulationEmpty = errors.New("no users match the selected filter")

// Population narrows who a report covers. Zero values mean "all";
// a single NIS beats the class filter, as on the report screen.
type Population struct {
	Role  models.Role
	Class string
	NIS   string
}

// Store is the read side the aggregator needs.
type Store interface {
	Users(ctx context.Context, p Population) ([]models.User, error)
	OnDate(ctx context.Context, date string, nis []string) ([]models.AttendanceRecord, error)
	InRange(ctx context.Context, nis []string, start, end string) ([]models.AttendanceRecord, error)
}

// SQLStore adapts the db package, with the standard DB timeout.
type SQLStore struct {
	DB *sql.DB
}

func (s SQLStore) Users(ctx context.Context, p Population) ([]models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListUsers(ctx, s.DB, db.UserFilter{Role: p.Role, Class: p.Class, NIS: p.NIS})
}

func (s SQLStore) OnDate(ctx context.Context, date string, nis []string) ([]models.AttendanceRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListAttendanceByDate(ctx, s.DB, date, nis)
}

func (s SQLStore) InRange(ctx context.Context, nis []string, start, end string) ([]models.AttendanceRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListAttendanceRange(ctx, s.DB, nis, start, end)
}

// Row is one user's resolved day: Record is nil when no row exists and
// Status then reads Alpha. Resolution happens here, once, not at every
// render site.
type Row struct {
	User   models.User
	Record *models.AttendanceRecord
	Status models.Status
}

type Generator struct {
	Store Store
	Now   func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// statusOf resolves the implicit defaults: no record means Alpha, a
// record without a stored status means Hadir.
func statusOf(rec *models.AttendanceRecord) models.Status {
	if rec == nil {
		return models.Alpha
	}
	if rec.Status == "" {
		return models.Hadir
	}
	return rec.Status
}

// Daily is a left outer join of the filtered roster against the day's
// records: every user appears exactly once, in roster (name) order.
func (g *Generator) Daily(ctx context.Context, p Population, date string) ([]Row, error) {
	users, err := g.Store.Users(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	recs, err := g.Store.OnDate(ctx, date, nisList(users))
	if err != nil {
		return nil, fmt.Errorf("load attendance for %s: %w", date, err)
	}

	byNIS := make(map[string]*models.AttendanceRecord, len(recs))
	for i := range recs {
		byNIS[recs[i].UserNIS] = &recs[i]
	}

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rec := byNIS[u.NIS]
		rows = append(rows, Row{User: u, Record: rec, Status: statusOf(rec)})
	}
	return rows, nil
}

// DailySheet turns daily rows into the header-style export sheet.
func DailySheet(rows []Row, role models.Role, date string) export.SheetSpec {
	idHeader := "NIS/ID"
	if role == models.Teacher {
		idHeader = "ID Guru"
	}
	spec := export.SheetSpec{
		Title: "Laporan " + date,
		Header: []string{idHeader, "Nama", "Kelas/Peran", "Status", "Jam Masuk", "Selfie Masuk",
			"Lokasi Masuk", "Jam Pulang", "Selfie Pulang", "Lokasi Pulang", "Keterangan"},
	}
	for _, r := range rows {
		var rec models.AttendanceRecord // zero value = absent, all fields empty
		if r.Record != nil {
			rec = *r.Record
		}
		spec.Rows = append(spec.Rows, []string{
			r.User.NIS,
			r.User.Name,
			r.User.ClassLabel(),
			string(r.Status),
			timeCell(rec.TimeIn),
			strCell(rec.SelfieInURL),
			locCell(rec.LatitudeIn, rec.LongitudeIn),
			timeCell(rec.TimeOut),
			strCell(rec.SelfieOutURL),
			locCell(rec.LatitudeOut, rec.LongitudeOut),
			strCell(rec.Keterangan),
		})
	}
	return spec
}

func nisList(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.NIS
	}
	return out
}

// cell formatting: "-" stands in for anything missing

func timeCell(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04:05")
}

func strCell(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func locCell(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return "-"
	}
	return fmt.Sprintf("Lat: %v, Lng: %v", *lat, *lng)
}
