package export

import (
	"fmt"
	"regexp"
	"strings"
)

var sheetNameStrip = regexp.MustCompile(`[/\\?*:\[\]']`)

// SafeSheetName strips characters Excel rejects in sheet names and
// truncates to 30 runes. Collisions are not resolved here; adding two
// sheets with the same sanitized name fails the export.
func SafeSheetName(s string) string {
	s = sheetNameStrip.ReplaceAllString(s, "")
	r := []rune(s)
	if len(r) > 30 {
		r = r[:30]
	}
	return string(r)
}

func DailyReportFilename(date string) string {
	return sanitizeFileName(fmt.Sprintf("Laporan_Harian_%s.xlsx", date))
}

func MonthlyReportFilename(role, month string) string {
	return sanitizeFileName(fmt.Sprintf("Laporan_Bulanan_%s_%s.xlsx", role, month))
}

func SemesterReportFilename(semester, class string) string {
	if class == "" {
		class = "SemuaKelas"
	}
	return sanitizeFileName(fmt.Sprintf("Laporan_Semester_%s_%s.xlsx", strings.ToUpper(semester), class))
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}
