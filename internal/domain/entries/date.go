package entries

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDate acepta YYYY-MM-DD o el formato legado YYYY/MM/DD y
// devuelve la forma canónica ordenable YYYY-MM-DD. La conversión se hace
// una sola vez en el borde, no en cada comparación.
func NormalizeDate(s string) (string, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

// ParseDate interpreta una fecha almacenada (canónica o legada) como
// medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.ReplaceAll(strings.TrimSpace(s), "/", "-"))
}
