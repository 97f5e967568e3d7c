package wordlist

import "unicode/utf8"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Filter returns the words accepted by every filter, in order.
func Filter(words []string, filters ...FilterFunc) []string {
	out := make([]string, 0, len(words))
next:
	for _, w := range words {
		for _, f := range filters {
			if !f(w) {
				continue next
			}
		}
		out = append(out, w)
	}
	return out
}

// MaxLen keeps words of at most n runes. n <= 0 keeps everything.
func MaxLen(n int) FilterFunc {
	return func(word string) bool {
		return n <= 0 || utf8.RuneCountInString(word) <= n
	}
}

// FilterMaxLen keeps the keys the breaker can try within n letters.
func FilterMaxLen(keys []string, n int) []string {
	return Filter(keys, MaxLen(n))
}

// ASCIIWords keeps lowercase a-z words, suitable as cipher sample text.
func ASCIIWords(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
