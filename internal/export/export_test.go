package export

import (
	"errors"
	"testing"
)

func TestSafeSheetName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Budi Santoso", "Budi Santoso"},
		{"A/B\\C?D*E:F[G]H'I", "ABCDEFGHI"},
		{"Nama Yang Sangat Panjang Sekali Sekali Sekali", "Nama Yang Sangat Panjang Sekal"},
	}
	for _, c := range cases {
		if got := SafeSheetName(c.in); got != c.want {
			t.Errorf("SafeSheetName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDuplicateSheetRejected(t *testing.T) {
	wb := NewWorkbook()
	if err := wb.AddGridSheet("Budi", [][]string{{"x"}}); err != nil {
		t.Fatal(err)
	}
	err := wb.AddGridSheet("Budi", [][]string{{"y"}})
	if !errors.Is(err, ErrDuplicateSheetName) {
		t.Fatalf("got %v, want ErrDuplicateSheetName", err)
	}
}

func TestFirstSheetReplacesDefault(t *testing.T) {
	wb := NewWorkbook()
	if err := wb.AddRowSheet(SheetSpec{
		Title:  "Laporan 2026-03-09",
		Header: []string{"NIS", "Nama"},
		Rows:   [][]string{{"1001", "Ani"}},
	}); err != nil {
		t.Fatal(err)
	}
	sheets := wb.File.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Laporan 2026-03-09" {
		t.Fatalf("sheets = %v, want the renamed default only", sheets)
	}

	got, err := wb.File.GetCellValue("Laporan 2026-03-09", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ani" {
		t.Fatalf("B2 = %q, want Ani", got)
	}
}

func TestReportFilenames(t *testing.T) {
	if got := DailyReportFilename("2026-03-09"); got != "Laporan_Harian_2026-03-09.xlsx" {
		t.Errorf("daily = %q", got)
	}
	if got := SemesterReportFilename("gasal", ""); got != "Laporan_Semester_GASAL_SemuaKelas.xlsx" {
		t.Errorf("semester = %q", got)
	}
}
