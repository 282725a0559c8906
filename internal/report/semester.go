package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abinijav/absensi-digital/internal/export"
	"github.com/abinijav/absensi-digital/internal/models"
	"github.com/xuri/excelize/v2"
)

// Semester is an academic half-year of the clock's current calendar
// year: gasal runs Jul-Dec, genap Jan-Jun.
type Semester string

const (
	Gasal Semester = "gasal"
	Genap Semester = "genap"
)

func (s Semester) Months() []time.Month {
	if s == Gasal {
		return []time.Month{time.July, time.August, time.September, time.October, time.November, time.December}
	}
	return []time.Month{time.January, time.February, time.March, time.April, time.May, time.June}
}

func (s Semester) Title() string {
	if s == Gasal {
		return "GASAL"
	}
	return "GENAP"
}

var monthNames = map[time.Month]string{
	time.January: "Januari", time.February: "Februari", time.March: "Maret",
	time.April: "April", time.May: "Mei", time.June: "Juni",
	time.July: "Juli", time.August: "Agustus", time.September: "September",
	time.October: "Oktober", time.November: "November", time.December: "Desember",
}

// MonthTally is one month's status buckets.
type MonthTally struct {
	Hadir int
	Sakit int
	Izin  int
	Alpha int
}

func (t MonthTally) Total() int { return t.Hadir + t.Sakit + t.Izin + t.Alpha }

// semesterTallies pre-seeds every day of every month as Alpha, then
// each record bumps its own bucket and takes one day back from Alpha
// (bounded at zero). A record with an unknown status still consumes an
// Alpha day without landing anywhere; this mirrors the stored data's
// contract of at most one record per (user, day).
func semesterTallies(recs []models.AttendanceRecord, year int, months []time.Month) map[time.Month]*MonthTally {
	out := make(map[time.Month]*MonthTally, len(months))
	for _, m := range months {
		out[m] = &MonthTally{Alpha: daysIn(year, m)}
	}
	for _, rec := range recs {
		day, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		t := out[day.Month()]
		if t == nil || day.Year() != year {
			continue
		}
		switch statusOf(&rec) {
		case models.Hadir:
			t.Hadir++
		case models.Sakit:
			t.Sakit++
		case models.Izin:
			t.Izin++
		case models.Alpha:
			t.Alpha++
		}
		if t.Alpha > 0 {
			t.Alpha--
		}
	}
	return out
}

// SemesterWorkbook builds the recap workbook: one sheet per user,
// named after the user (sanitized, 30 runes). Two users whose names
// sanitize identically fail the whole export.
func (g *Generator) SemesterWorkbook(ctx context.Context, p Population, sem Semester) (*excelize.File, error) {
	users, err := g.Store.Users(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrPopulationEmpty
	}

	year := g.now().Year()
	months := sem.Months()
	first, last := months[0], months[len(months)-1]
	start := fmt.Sprintf("%04d-%02d-01", year, first)
	end := fmt.Sprintf("%04d-%02d-%02d", year, last, daysIn(year, last))

	recs, err := g.Store.InRange(ctx, nisList(users), start, end)
	if err != nil {
		return nil, fmt.Errorf("load attendance %s..%s: %w", start, end, err)
	}
	byNIS := make(map[string][]models.AttendanceRecord)
	for _, rec := range recs {
		byNIS[rec.UserNIS] = append(byNIS[rec.UserNIS], rec)
	}

	wb := export.NewWorkbook()
	for _, u := range users {
		tallies := semesterTallies(byNIS[u.NIS], year, months)
		if err := wb.AddGridSheet(export.SafeSheetName(u.Name), semesterSheet(u, sem, year, months, tallies)); err != nil {
			return nil, err
		}
	}
	return wb.File, nil
}

func semesterSheet(u models.User, sem Semester, year int, months []time.Month, tallies map[time.Month]*MonthTally) [][]string {
	grid := [][]string{
		{"REKAPITULASI KEHADIRAN"},
		{fmt.Sprintf("SEMESTER %s TAHUN AJARAN %d/%d", sem.Title(), year, year+1)},
		{},
		{"Nama", u.Name},
		{"Kelas", u.ClassLabel()},
		{},
		{"Bulan", "Hadir", "Sakit", "Izin", "Alpha", "Jumlah"},
	}

	var total MonthTally
	for _, m := range months {
		t := tallies[m]
		grid = append(grid, []string{
			monthNames[m],
			strconv.Itoa(t.Hadir), strconv.Itoa(t.Sakit), strconv.Itoa(t.Izin), strconv.Itoa(t.Alpha),
			strconv.Itoa(t.Total()),
		})
		total.Hadir += t.Hadir
		total.Sakit += t.Sakit
		total.Izin += t.Izin
		total.Alpha += t.Alpha
	}
	grid = append(grid, []string{
		"Total Semester",
		strconv.Itoa(total.Hadir), strconv.Itoa(total.Sakit), strconv.Itoa(total.Izin), strconv.Itoa(total.Alpha),
		strconv.Itoa(total.Total()),
	})
	return grid
}
