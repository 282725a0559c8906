package models

import "time"

type Status string

const (
	Hadir Status = "Hadir" // present
	Sakit Status = "Sakit" // sick
	Izin  Status = "Izin"  // excused
	Alpha Status = "Alpha" // unexcused absence
)

// AttendanceRecord mirrors one row of the attendance table.
// user_nis, name and class are denormalized from users on purpose:
// roster edits cascade into historical rows instead of joining on read.
type AttendanceRecord struct {
	ID           int64
	UserNIS      string
	Name         string
	Class        *string
	Date         string // calendar day, local timezone, YYYY-MM-DD
	TimeIn       *time.Time
	TimeOut      *time.Time
	SelfieInURL  *string
	SelfieOutURL *string
	LatitudeIn   *float64
	LongitudeIn  *float64
	LatitudeOut  *float64
	LongitudeOut *float64
	Status       Status
	Keterangan   *string
}

// DateString formats t as the calendar-day key used across the store.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
