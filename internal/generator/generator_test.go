package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/vigaff/internal/alphabet"
)

func TestTextUsesPangramByDefault(t *testing.T) {
	g := NewSeeded(1)
	got := g.Text(nil, 50)
	if len(got) != 50 {
		t.Fatalf("expected 50 bytes, got %d", len(got))
	}
	if !strings.HasPrefix(got, Pangram+" the") {
		t.Fatalf("unexpected text %q", got)
	}
	if g.Text(nil, 0) != "" {
		t.Fatalf("expected empty text for size 0")
	}
}

func TestTextFromWordsIsExactSize(t *testing.T) {
	g := NewSeeded(7)
	words := []string{"alpha", "beta", "gamma", "délta"}
	for _, size := range []int{1, 17, 500} {
		got := g.Text(words, size)
		if n := utf8.RuneCountInString(got); n != size {
			t.Fatalf("expected %d runes, got %d", size, n)
		}
	}
}

func TestSeededGeneratorsAgree(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	words := []string{"one", "two", "three"}
	if strings.Join(a.Generate(words, 20, 0.5, 0.5, DefaultPunct), " ") !=
		strings.Join(b.Generate(words, 20, 0.5, 0.5, DefaultPunct), " ") {
		t.Fatalf("expected identical sequences for identical seeds")
	}
	if a.Key(12) != b.Key(12) {
		t.Fatalf("expected identical keys for identical seeds")
	}
}

func TestKeyIsUppercaseLetters(t *testing.T) {
	key := NewSeeded(3).Key(32)
	if len(key) != 32 {
		t.Fatalf("expected 32 letters, got %d", len(key))
	}
	for _, r := range key {
		if !alphabet.IsUpper(r) {
			t.Fatalf("unexpected key rune %q", r)
		}
	}
}

func TestGenerateAppliesCapsAndPunct(t *testing.T) {
	out := NewSeeded(5).Generate([]string{"word"}, 10, 1, 1, []rune{'!'})
	for _, w := range out {
		if w != "Word!" {
			t.Fatalf("expected Word!, got %q", w)
		}
	}
}
