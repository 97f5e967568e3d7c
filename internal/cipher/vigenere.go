// Package cipher implements the Vigenère, Affine and combined transforms.
package cipher

import (
	"strings"

	"github.com/verte-zerg/vigaff/internal/alphabet"
)

// KeyShifts returns the residues of the letters in key. Non-letters are ignored.
func KeyShifts(key string) ([]int, error) {
	shifts := alphabet.Residues(key)
	if len(shifts) == 0 {
		return nil, &InvalidKeyError{}
	}
	return shifts, nil
}

// Vigenere shifts every letter of text by the key letter at its letter position.
// Non-letters are copied unchanged and do not advance the key position, so the
// key stream depends only on the letters of text.
func Vigenere(text, key string, dir Direction) (string, error) {
	sign, err := dir.sign()
	if err != nil {
		return "", err
	}
	shifts, err := KeyShifts(key)
	if err != nil {
		return "", err
	}
	return shiftStream(text, shifts, sign), nil
}

func shiftStream(text string, shifts []int, sign int) string {
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, r := range text {
		x, err := alphabet.Encode(r)
		if err != nil {
			b.WriteRune(r)
			continue
		}
		k := shifts[pos%len(shifts)]
		pos++
		b.WriteRune(alphabet.Decode(x+sign*k, alphabet.IsUpper(r)))
	}
	return b.String()
}

// LettersOnly uppercases text and drops every non-letter.
func LettersOnly(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if alphabet.IsLetter(r) {
			b.WriteRune(upper(r))
		}
	}
	return b.String()
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
