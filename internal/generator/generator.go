// Package generator builds sample plaintext and random keys.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/vigaff/internal/alphabet"
)

// Pangram is the fallback sample sentence.
const Pangram = "the quick brown fox jumps over the lazy dog"

// DefaultPunct is appended to words when punctuation is requested.
var DefaultPunct = []rune{'.', ',', '?', '!', ';'}

// Generator produces randomized sample text and keys.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	if len(words) == 0 {
		words = strings.Fields(Pangram)
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

// Text returns exactly size runes of space separated words. Without words it
// repeats the pangram, which keeps timings comparable between runs.
func (g *Generator) Text(words []string, size int) string {
	if size <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(size + 16)
	if len(words) == 0 {
		for b.Len() < size {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(Pangram)
		}
		return b.String()[:size]
	}
	n := 0
	for n < size {
		for _, w := range g.Generate(words, 16, 0.1, 0.05, DefaultPunct) {
			if n > 0 {
				b.WriteByte(' ')
				n++
			}
			b.WriteString(w)
			n += len([]rune(w))
		}
	}
	return string([]rune(b.String())[:size])
}

// Key returns a random uppercase key of the given length.
func (g *Generator) Key(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet.Letters[g.rnd.Intn(alphabet.Size)]
	}
	return string(buf)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 || rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || rnd.Float64() > punctPct {
		return word
	}
	return word + string(punctSet[rnd.Intn(len(punctSet))])
}
