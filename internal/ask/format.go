package ask

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MissingValue is rendered for absent or NULL fields.
const MissingValue = "n/a"

var printer = message.NewPrinter(language.English)

// FormatSource renders rows as one line per row, joined by newlines with no
// trailing newline. No rows yields an empty string.
func FormatSource(src Source, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = FormatRow(src, row)
	}
	return strings.Join(lines, "\n")
}

// FormatRow renders a single row as "[TAG] Label: value, Label: value".
func FormatRow(src Source, row Row) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(src.Tag)
	sb.WriteString("] ")
	for i, f := range src.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Label)
		sb.WriteString(": ")
		sb.WriteString(formatField(f, row))
	}
	return sb.String()
}

func formatField(f Field, row Row) string {
	v, ok := row[f.Column]
	if !ok || v == nil {
		return MissingValue
	}

	var s string
	switch f.Kind {
	case KindDate:
		s = formatTime(v, "2006-01-02")
	case KindMonth:
		s = formatTime(v, "2006-01")
	case KindNumber, KindMoney:
		n, ok := toFloat(v)
		if !ok {
			s = fmt.Sprint(v)
			break
		}
		s = formatNumber(n)
	case KindPercent:
		n, ok := toFloat(v)
		if !ok {
			s = fmt.Sprint(v)
			break
		}
		// Stored as a fraction.
		s = strconv.FormatFloat(math.Round(n*1000)/10, 'f', -1, 64) + "%"
	default:
		s = fmt.Sprint(v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return MissingValue
	}
	if f.Truncate > 0 {
		s = truncate(s, f.Truncate)
	}
	if unit := fieldUnit(f, row); unit != "" {
		s += " " + unit
	}
	return s
}

func fieldUnit(f Field, row Row) string {
	if f.Unit != "" {
		return f.Unit
	}
	if f.UnitColumn == "" {
		return ""
	}
	if u, ok := row[f.UnitColumn].(string); ok {
		return strings.TrimSpace(u)
	}
	return ""
}

func formatTime(v any, layout string) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(layout)
	default:
		return fmt.Sprint(v)
	}
}

// formatNumber groups thousands and keeps at most two decimals.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprintf("%.2f", n)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
