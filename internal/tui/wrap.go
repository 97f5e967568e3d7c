package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	isBreak bool
}

// span is a half-open range of rune indices; end <= start marks no span.
type span struct {
	start int
	end   int
}

func (s span) contains(i int) bool {
	return i >= s.start && i < s.end
}

// buildStyledRunes styles letters as cipher output, passes non-letters through
// muted and highlights the runes inside mark.
func buildStyledRunes(text []rune, mark span) []styledRune {
	out := make([]styledRune, 0, len(text))
	for i, r := range text {
		if r == '\n' {
			out = append(out, styledRune{isSpace: true, isBreak: true})
			continue
		}
		style := passStyle
		switch {
		case mark.contains(i) && unicode.IsLetter(r):
			style = markStyle
		case unicode.IsLetter(r):
			style = letterStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: unicode.IsSpace(r),
		})
	}
	return out
}

// markFor locates the rune span of the first letters-only occurrence of
// fragment in text. Non-letters inside text are allowed within the match.
func markFor(text []rune, fragment string) span {
	want := []rune(strings.ToUpper(fragment))
	letters := want[:0:0]
	for _, r := range want {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return span{}
	}
	for start := range text {
		if !unicode.IsLetter(text[start]) {
			continue
		}
		matched := 0
		i := start
		for ; i < len(text) && matched < len(letters); i++ {
			if !unicode.IsLetter(text[i]) {
				continue
			}
			if unicode.ToUpper(text[i]) != letters[matched] {
				break
			}
			matched++
		}
		if matched == len(letters) {
			return span{start: start, end: i}
		}
	}
	return span{}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		if item.isBreak {
			b.WriteRune('\n')
			continue
		}
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits, or mid-word when a
// single word is wider than width. Newlines in the text are kept.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(items []styledRune) {
		out.WriteString(renderStyledRunes(items))
		out.WriteRune('\n')
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if item.isBreak {
			flush(line)
			line = line[:0]
			lineWidth = 0
			lastSpaceIdx = -1
			i++
			continue
		}
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace {
				flush(line)
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				flush(line[:lastSpaceIdx])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				flush(line)
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
