// Package alphabet maps ASCII letters to residues mod 26 and back.
package alphabet

import "errors"

// Size is the number of letters in the alphabet.
const Size = 26

// Letters is the alphabet in residue order.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrNotLetter is returned when a rune outside A-Z/a-z is encoded.
var ErrNotLetter = errors.New("not an ASCII letter")

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// IsUpper reports whether r is an uppercase ASCII letter.
func IsUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Encode returns the residue of r in [0,26).
func Encode(r rune) (int, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), nil
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), nil
	default:
		return 0, ErrNotLetter
	}
}

// Decode returns the letter for residue in the requested case.
// The residue is reduced mod 26 first.
func Decode(residue int, upper bool) rune {
	residue = Mod(residue)
	if upper {
		return rune('A' + residue)
	}
	return rune('a' + residue)
}

// Mod reduces x into [0,26).
func Mod(x int) int {
	x %= Size
	if x < 0 {
		x += Size
	}
	return x
}

// Residues returns the residues of the letters in s, skipping everything else.
func Residues(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if v, err := Encode(r); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Word renders residues as an uppercase string.
func Word(residues []int) string {
	buf := make([]byte, len(residues))
	for i, v := range residues {
		buf[i] = byte('A' + Mod(v))
	}
	return string(buf)
}
