package entity

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// fallbackLayouts - форматы, которые сервер отдавал в разных версиях эндпоинтов.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02.01.2006",
	"02.01.2006 15:04",
	time.RFC1123,
	time.RFC1123Z,
}

// NormalizeDate приводит значение к календарной дате YYYY-MM-DD.
// Строка ISO-8601 обрезается до первых 10 символов, остальные форматы
// разбираются. Неразбираемое значение дает пустую строку.
func NormalizeDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	if len(v) >= len(dateLayout) {
		if _, err := time.Parse(dateLayout, v[:len(dateLayout)]); err == nil {
			return v[:len(dateLayout)]
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(dateLayout)
		}
	}

	return ""
}
