package domain

import "fmt"

// FormatSeconds renders a duration as M:SS for display. The canonical
// stored representation is always integer seconds or minutes; this is
// never written back.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// DeriveTags extracts fallback tags from an item name when the
// operator supplies none: lowercased words, short connectives skipped.
func DeriveTags(name string) []string {
	stop := map[string]bool{
		"a": true, "an": true, "and": true, "for": true, "of": true,
		"on": true, "or": true, "the": true, "to": true, "with": true,
	}
	tags := []string{}
	word := []rune{}
	flush := func() {
		if len(word) < 3 {
			word = word[:0]
			return
		}
		w := string(word)
		if !stop[w] {
			tags = append(tags, w)
		}
		word = word[:0]
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			word = append(word, r)
		case r >= 'A' && r <= 'Z':
			word = append(word, r+('a'-'A'))
		default:
			flush()
		}
	}
	flush()
	return tags
}
