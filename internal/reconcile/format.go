package reconcile

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when reading a date as extracted from a scan.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02.01.2006",
}

const exportDateLayout = "1/2/2006"

// FormatDate renders a date as M/D/YYYY. It returns nil when s is nil, blank or
// not in a recognised layout.
func FormatDate(s *string) *string {
	if s == nil {
		return nil
	}
	raw := strings.TrimSpace(*s)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			out := t.Format(exportDateLayout)
			return &out
		}
	}
	return nil
}

// FormatImportDocNum strips every "/" and separates the first two characters from
// the rest with two spaces: "12/345/6" becomes "12  3456". Values shorter than two
// characters after stripping are returned as is.
func FormatImportDocNum(s *string) *string {
	if s == nil {
		return nil
	}
	stripped := []rune(strings.ReplaceAll(*s, "/", ""))
	if len(stripped) < 2 {
		out := string(stripped)
		return &out
	}
	out := string(stripped[:2]) + "  " + string(stripped[2:])
	return &out
}

// CleanQuantity keeps only digits, '.' and ',' from a quantity string.
func CleanQuantity(s *string) *string {
	if s == nil {
		return nil
	}
	var b strings.Builder
	for _, r := range *s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	return &out
}
