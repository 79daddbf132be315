package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify lowercases, strips accents and keeps [a-z0-9-]. Empty input gives "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := reNonAlnum.ReplaceAllString(b.String(), "-")
	out = strings.Trim(reHyphen.ReplaceAllString(out, "-"), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	if out == "" {
		out = "item"
	}
	return out
}

// EnsureUniqueSlug appends -2, -3 ... until column has no row with that slug.
// excludeID skips the row being updated ("" for inserts).
func EnsureUniqueSlug(ctx context.Context, db *gorm.DB, table, column, idColumn, base, excludeID string) (string, error) {
	slug := base
	for i := 2; i < 50; i++ {
		q := db.WithContext(ctx).Table(table).Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug))
		if excludeID != "" {
			q = q.Where(fmt.Sprintf("%s <> ?", idColumn), excludeID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
