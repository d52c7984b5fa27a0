package derive

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate interpreta fechas ISO (YYYY-MM-DD) o datetimes RFC3339.
// Una fecha sin hora se interpreta como día calendario en loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayDiff días calendario entre hoy (en loc) y la fecha s. ok=false si s está vacía o mal formada.
func DayDiff(s string, now time.Time, loc *time.Location) (int, bool) {
	t, ok := ParseDate(s, loc)
	if !ok {
		return 0, false
	}
	if loc == nil {
		loc = time.UTC
	}
	return daysBetween(now.In(loc), t.In(loc)), true
}

// daysBetween compara solo año/mes/día para no depender de cambios de horario.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// FormatDate YYYY-MM-DD de t en loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(dateLayout)
}

// AddDays suma n días a una fecha ISO. Devuelve "" si s no se puede interpretar.
func AddDays(s string, n int, loc *time.Location) string {
	t, ok := ParseDate(s, loc)
	if !ok {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n), loc)
}

// MonthToISODate "2026-3" → "2026-03-01". Año y mes faltantes caen a 2025 y 01.
func MonthToISODate(yyyyMm string) string {
	parts := strings.Split(strings.TrimSpace(yyyyMm), "-")
	y := "2025"
	m := "01"
	if len(parts) > 0 && parts[0] != "" {
		y = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		m = parts[1]
	}
	mm := ("0" + m)
	mm = mm[len(mm)-2:]
	return y + "-" + mm + "-01"
}

// PeriodOf periodo YYYY-MM de t en loc.
func PeriodOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01")
}

// ValidPeriod indica si p tiene forma YYYY-MM con mes válido.
func ValidPeriod(p string) bool {
	_, err := time.Parse("2006-01", p)
	return err == nil
}
