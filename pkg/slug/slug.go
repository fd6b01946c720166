package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generate creates a URL-friendly slug from the given name.
//
// The name is lowercased and NFKD-decomposed, every non-ASCII rune is dropped
// (so "đ", which has no decomposition, disappears rather than becoming "d"),
// characters other than letters, digits, spaces and hyphens are removed and
// the remaining words are joined with single hyphens. Existing catalogue rows
// were keyed with exactly this folding, so it must not change.
//
// Examples:
//   - "Áo Thun Nam" → "ao-thun-nam"
//   - "Quần Jean (Slim)" → "quan-jean-slim"
//   - "Đầm Dự Tiệc" → "am-du-tiec"
func Generate(name string) string {
	folded, _, err := transform.String(asciiFold(), strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r > unicode.MaxASCII {
			continue
		}
		if isAlnum(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}

func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
