package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/abinijav/absensi-digital/internal/models"
)

const attendanceColumns = `id, user_nis, name, class, date, time_in, time_out,
	selfie_in_url, selfie_out_url, latitude_in, longitude_in, latitude_out, longitude_out,
	status, keterangan`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (*models.AttendanceRecord, error) {
	var (
		r      models.AttendanceRecord
		name   sql.NullString
		status sql.NullString
	)
	err := row.Scan(&r.ID, &r.UserNIS, &name, &r.Class, &r.Date, &r.TimeIn, &r.TimeOut,
		&r.SelfieInURL, &r.SelfieOutURL, &r.LatitudeIn, &r.LongitudeIn, &r.LatitudeOut, &r.LongitudeOut,
		&status, &r.Keterangan)
	if err != nil {
		return nil, err
	}
	r.Name = name.String
	r.Status = models.Status(status.String)
	return &r, nil
}

// GetAttendance fetches the single record for (nis, date); nil when the
// user has no record that day.
func GetAttendance(ctx context.Context, database *sql.DB, nis, date string) (*models.AttendanceRecord, error) {
	row := database.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE user_nis = $1 AND date = $2`, nis, date)
	rec, err := scanAttendance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func InsertCheckIn(ctx context.Context, database *sql.DB, r models.AttendanceRecord) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO attendance (user_nis, name, class, date, time_in, selfie_in_url, status, latitude_in, longitude_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, r.UserNIS, r.Name, r.Class, r.Date, r.TimeIn, r.SelfieInURL, string(r.Status), r.LatitudeIn, r.LongitudeIn).Scan(&id)
	return id, err
}

// UpdateCheckOut completes the day's record in place. Always an update
// by id, never a second insert.
func UpdateCheckOut(ctx context.Context, database *sql.DB, id int64, timeOut time.Time, selfieURL string, lat, lng float64) error {
	_, err := database.ExecContext(ctx, `
		UPDATE attendance
		SET time_out = $1, selfie_out_url = $2, latitude_out = $3, longitude_out = $4
		WHERE id = $5
	`, timeOut, selfieURL, lat, lng, id)
	return err
}

// UpsertAttendance is the manual-entry escape hatch: one row per
// (user_nis, date), conflict resolved by overwriting.
func UpsertAttendance(ctx context.Context, database *sql.DB, r models.AttendanceRecord) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO attendance (user_nis, name, class, date, time_in, time_out, status, keterangan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_nis, date) DO UPDATE SET
			name = excluded.name,
			class = excluded.class,
			time_in = excluded.time_in,
			time_out = excluded.time_out,
			status = excluded.status,
			keterangan = excluded.keterangan
	`, r.UserNIS, r.Name, r.Class, r.Date, r.TimeIn, r.TimeOut, string(r.Status), r.Keterangan)
	return err
}

func inPlaceholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(ps, ", ")
}

// ListAttendanceByDate returns the records on one date for the given
// nis set, at most one per user.
func ListAttendanceByDate(ctx context.Context, database *sql.DB, date string, nisList []string) ([]models.AttendanceRecord, error) {
	if len(nisList) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(nisList)+1)
	args = append(args, date)
	for _, nis := range nisList {
		args = append(args, nis)
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = $1 AND user_nis IN (` + inPlaceholders(2, len(nisList)) + `)`
	return queryAttendance(ctx, database, query, args...)
}

// ListAttendanceRange returns records for the nis set with
// start <= date <= end (ISO day strings compare lexically).
func ListAttendanceRange(ctx context.Context, database *sql.DB, nisList []string, start, end string) ([]models.AttendanceRecord, error) {
	if len(nisList) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(nisList)+2)
	args = append(args, start, end)
	for _, nis := range nisList {
		args = append(args, nis)
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE date >= $1 AND date <= $2 AND user_nis IN (` + inPlaceholders(3, len(nisList)) + `)
		ORDER BY date`
	return queryAttendance(ctx, database, query, args...)
}

func queryAttendance(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.AttendanceRecord, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
