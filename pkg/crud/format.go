package crud

import "time"

// FormatDate renders a time value as yyyy-mm-dd for page templates.
// Accepts time.Time and *time.Time; nil and zero times render empty.
func FormatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ""
}
