package aggregator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

func names(locale string) [12]string {
	if n, ok := monthNames[strings.ToLower(locale)]; ok {
		return n
	}
	return monthNames["en"]
}

// MonthLabel returns the locale name of month 1..12, "" otherwise.
func MonthLabel(locale string, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return names(locale)[month-1]
}

func foldLabel(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(cases.Fold().String(strings.TrimSpace(s))) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MonthIndex parses a label back to 1..12, ignoring case and accents.
func MonthIndex(locale, label string) (int, bool) {
	want := foldLabel(label)
	if want == "" {
		return 0, false
	}
	for i, n := range names(locale) {
		if foldLabel(n) == want {
			return i + 1, true
		}
	}
	return 0, false
}

// TitleLabel capitalizes a label for chart axes.
func TitleLabel(locale, label string) string {
	tag := language.English
	if strings.EqualFold(locale, "fr") {
		tag = language.French
	}
	return cases.Title(tag).String(label)
}
