package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abinijav/absensi-digital/internal/export"
	"github.com/abinijav/absensi-digital/internal/metrics"
)

// File-producing variants of the reports. Each builds the workbook in
// memory, saves it under dir (os.TempDir when empty) and returns the
// full path for the caller to hand out.

func exportDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	return dir
}

func (g *Generator) DailyExport(ctx context.Context, p Population, date, dir string) (string, error) {
	t0 := time.Now()
	rows, err := g.Daily(ctx, p, date)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrPopulationEmpty
	}

	wb := export.NewWorkbook()
	if err := wb.AddRowSheet(DailySheet(rows, p.Role, date)); err != nil {
		return "", err
	}
	path, err := wb.SaveTo(exportDir(dir), export.DailyReportFilename(date))
	if err != nil {
		return "", fmt.Errorf("save daily report: %w", err)
	}
	metrics.ExportDuration.Observe(time.Since(t0).Seconds())
	return path, nil
}

func (g *Generator) MonthlyExport(ctx context.Context, p Population, year int, month time.Month, dir string) (string, error) {
	t0 := time.Now()
	grid, err := g.Monthly(ctx, p, year, month)
	if err != nil {
		return "", err
	}

	wb := export.NewWorkbook()
	if err := wb.AddGridSheet("Laporan Bulanan", grid); err != nil {
		return "", err
	}
	roleLabel := string(p.Role)
	if roleLabel == "" {
		roleLabel = "semua"
	}
	name := export.MonthlyReportFilename(roleLabel, fmt.Sprintf("%04d-%02d", year, month))
	path, err := wb.SaveTo(exportDir(dir), name)
	if err != nil {
		return "", fmt.Errorf("save monthly report: %w", err)
	}
	metrics.ExportDuration.Observe(time.Since(t0).Seconds())
	return path, nil
}

func (g *Generator) SemesterExport(ctx context.Context, p Population, sem Semester, dir string) (string, error) {
	t0 := time.Now()
	f, err := g.SemesterWorkbook(ctx, p, sem)
	if err != nil {
		return "", err
	}
	path := filepath.Join(exportDir(dir), export.SemesterReportFilename(string(sem), p.Class))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save semester report: %w", err)
	}
	metrics.ExportDuration.Observe(time.Since(t0).Seconds())
	return path, nil
}
