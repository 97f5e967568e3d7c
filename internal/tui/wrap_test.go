package tui

import "testing"

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{
			s:       string(r),
			width:   1,
			isSpace: r == ' ' || r == '\n',
			isBreak: r == '\n',
		})
	}
	return out
}

func TestBuildStyledRunesStyles(t *testing.T) {
	runes := buildStyledRunes([]rune("Ab, c"), span{start: 0, end: 1})
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[0].s != markStyle.Render("A") {
		t.Fatalf("expected mark style for the marked letter")
	}
	if runes[1].s != letterStyle.Render("b") {
		t.Fatalf("expected letter style for an unmarked letter")
	}
	if runes[2].s != passStyle.Render(",") {
		t.Fatalf("expected pass style for punctuation")
	}
	if !runes[3].isSpace || runes[3].isBreak {
		t.Fatalf("expected a plain space")
	}
}

func TestBuildStyledRunesKeepsNewlines(t *testing.T) {
	runes := buildStyledRunes([]rune("a\nb"), span{})
	if !runes[1].isBreak {
		t.Fatalf("expected newline to become a break")
	}
}

func TestMarkForSkipsNonLetters(t *testing.T) {
	text := []rune("Hello, World")
	got := markFor(text, "loWo")
	if got != (span{start: 3, end: 9}) {
		t.Fatalf("unexpected span %+v", got)
	}
	if got := markFor(text, "xyz"); got != (span{}) {
		t.Fatalf("expected no span for a missing fragment, got %+v", got)
	}
	if got := markFor(text, " , "); got != (span{}) {
		t.Fatalf("expected no span for a fragment without letters, got %+v", got)
	}
}

func TestWrapStyledRunes(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"aaa bbb ccc", 7, "aaa bbb\nccc"},
		{"aaa bbb ccc", 5, "aaa\nbbb\nccc"},
		{"abcdefgh", 3, "abc\ndef\ngh"},
		{"ab\ncd", 10, "ab\ncd"},
		{"ab cd", 0, "ab cd"},
	}
	for _, tc := range cases {
		if got := wrapStyledRunes(plainRunes(tc.text), tc.width); got != tc.want {
			t.Fatalf("wrap(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}
