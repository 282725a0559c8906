package report

import (
	"context"
	"fmt"
	"time"

	"github.com/abinijav/absensi-digital/internal/models"
)

var monthlyHeader = []string{"Tanggal", "Status", "Jam Masuk", "Selfie Masuk", "Lokasi Masuk",
	"Jam Pulang", "Selfie Pulang", "Lokasi Pulang", "Keterangan"}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Monthly builds the dense calendar export: one block per user, one
// line per calendar day whether or not a record exists.
func (g *Generator) Monthly(ctx context.Context, p Population, year int, month time.Month) ([][]string, error) {
	users, err := g.Store.Users(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrPopulationEmpty
	}

	days := daysIn(year, month)
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	end := fmt.Sprintf("%04d-%02d-%02d", year, month, days)
	recs, err := g.Store.InRange(ctx, nisList(users), start, end)
	if err != nil {
		return nil, fmt.Errorf("load attendance %s..%s: %w", start, end, err)
	}

	return monthlyGrid(users, recs, year, month), nil
}

func monthlyGrid(users []models.User, recs []models.AttendanceRecord, year int, month time.Month) [][]string {
	byKey := make(map[string]*models.AttendanceRecord, len(recs))
	for i := range recs {
		byKey[recs[i].UserNIS+"|"+recs[i].Date] = &recs[i]
	}

	days := daysIn(year, month)
	var grid [][]string
	for _, u := range users {
		grid = append(grid,
			[]string{"NIS/ID: " + u.NIS},
			[]string{"Nama: " + u.Name},
			[]string{"Kelas/Peran: " + u.ClassLabel()},
			[]string{},
			monthlyHeader,
		)
		for day := 1; day <= days; day++ {
			date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			grid = append(grid, dayLine(date, byKey[u.NIS+"|"+date]))
		}
		// blank separator between users
		grid = append(grid, []string{}, []string{})
	}
	return grid
}

func dayLine(date string, rec *models.AttendanceRecord) []string {
	status := statusOf(rec)
	var r models.AttendanceRecord
	if rec != nil {
		r = *rec
	}
	return []string{
		date,
		string(status),
		timeCell(r.TimeIn),
		strCell(r.SelfieInURL),
		locCell(r.LatitudeIn, r.LongitudeIn),
		timeCell(r.TimeOut),
		strCell(r.SelfieOutURL),
		locCell(r.LatitudeOut, r.LongitudeOut),
		strCell(r.Keterangan),
	}
}
