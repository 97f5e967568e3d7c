package cipher

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/vigaff/internal/alphabet"
)

var validA = [...]int{1, 3, 5, 7, 9, 11, 15, 17, 19, 21, 23, 25}

// ValidA returns the 12 multipliers that are invertible mod 26.
func ValidA() []int {
	out := make([]int, len(validA))
	copy(out, validA[:])
	return out
}

// AffineParams is the pair (a, b) of E(x) = a*x + b mod 26.
type AffineParams struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

func (p AffineParams) String() string {
	return fmt.Sprintf("a=%d, b=%d", p.A, p.B)
}

// Normalize reduces both values into [0,26).
func (p AffineParams) Normalize() AffineParams {
	return AffineParams{A: alphabet.Mod(p.A), B: alphabet.Mod(p.B)}
}

// Validate returns *InvalidParameterError when a has no inverse mod 26.
func (p AffineParams) Validate() error {
	if _, ok := ModInverse(p.A); !ok {
		return &InvalidParameterError{A: p.A}
	}
	return nil
}

// ModInverse returns the inverse of a mod 26.
func ModInverse(a int) (int, bool) {
	a = alphabet.Mod(a)
	for x := 1; x < alphabet.Size; x++ {
		if a*x%alphabet.Size == 1 {
			return x, true
		}
	}
	return 0, false
}

// AllAffineParams enumerates the 312 valid pairs, a-major.
func AllAffineParams() []AffineParams {
	out := make([]AffineParams, 0, len(validA)*alphabet.Size)
	for _, a := range validA {
		for b := 0; b < alphabet.Size; b++ {
			out = append(out, AffineParams{A: a, B: b})
		}
	}
	return out
}

// Affine applies x -> a*x+b (encrypt) or y -> a^-1*(y-b) (decrypt) to each letter.
func Affine(text string, p AffineParams, dir Direction) (string, error) {
	m, err := newAffineMap(p, dir)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		x, err := alphabet.Encode(r)
		if err != nil {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(alphabet.Decode(m[x], alphabet.IsUpper(r)))
	}
	return b.String(), nil
}

// affineMap is a precomputed residue substitution table.
type affineMap [alphabet.Size]int

func newAffineMap(p AffineParams, dir Direction) (affineMap, error) {
	var m affineMap
	if _, err := dir.sign(); err != nil {
		return m, err
	}
	inv, ok := ModInverse(p.A)
	if !ok {
		return m, &InvalidParameterError{A: p.A}
	}
	for x := 0; x < alphabet.Size; x++ {
		if dir == DirEncrypt {
			m[x] = alphabet.Mod(p.A*x + p.B)
		} else {
			m[x] = alphabet.Mod(inv * (x - p.B))
		}
	}
	return m, nil
}

// InvertResidues applies the affine decryption to a residue stream.
func InvertResidues(residues []int, p AffineParams) ([]int, error) {
	m, err := newAffineMap(p, DirDecrypt)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(residues))
	for i, y := range residues {
		out[i] = m[alphabet.Mod(y)]
	}
	return out, nil
}
