// Package attack recovers key material from combined-cipher ciphertext.
package attack

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/vigaff/internal/alphabet"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/freq"
	"github.com/verte-zerg/vigaff/internal/model"
)

// ErrNoAlignment is returned when no offset yields a consistent affine solution.
var ErrNoAlignment = errors.New("no consistent alignment found for known plaintext")

const defaultTop = 5

// KnownOptions tunes KnownPlaintext.
type KnownOptions struct {
	// Top is the number of alternatives returned next to the best alignment.
	Top int
	// AllowUnconfirmed returns the best alignment even when the key fragment
	// never repeats, instead of ErrNoAlignment.
	AllowUnconfirmed bool
}

// letterStream is the ciphertext reduced to its letters, with a map from rune
// offset to letter offset.
type letterStream struct {
	runes    []rune
	residues []int
	before   []int
}

func newLetterStream(text string) letterStream {
	runes := []rune(text)
	ls := letterStream{runes: runes, before: make([]int, len(runes)+1)}
	for i, r := range runes {
		ls.before[i+1] = ls.before[i]
		if x, err := alphabet.Encode(r); err == nil {
			ls.residues = append(ls.residues, x)
			ls.before[i+1]++
		}
	}
	return ls
}

// render writes plain residues back into the ciphertext layout.
func (ls letterStream) render(plain []int) string {
	var b strings.Builder
	b.Grow(len(ls.runes))
	t := 0
	for _, r := range ls.runes {
		if !alphabet.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(alphabet.Decode(plain[t], alphabet.IsUpper(r)))
		t++
	}
	return b.String()
}

// alignments returns the rune offsets at which fragment fits: letters over
// letters and identical non-letters over non-letters.
func (ls letterStream) alignments(fragment []rune) []int {
	var out []int
	for o := 0; o+len(fragment) <= len(ls.runes); o++ {
		ok := true
		for j, f := range fragment {
			c := ls.runes[o+j]
			if alphabet.IsLetter(f) {
				if !alphabet.IsLetter(c) {
					ok = false
					break
				}
				continue
			}
			if f != c {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, o)
		}
	}
	return out
}

// KnownPlaintext aligns a known plaintext fragment against the ciphertext,
// brute-forces the 312 affine pairs at every alignment and derives the
// Vigenère key fragment. An alignment is consistent when the derived key
// fragment repeats in full at least once inside the fragment; the whole key
// stream is then known and the full decryption is scored against English.
//
// A fragment shorter than twice the key period cannot confirm any pair, so
// the attack then returns ErrNoAlignment unless AllowUnconfirmed is set.
// For one multiplier the 26 offsets give the same plaintext with the key
// shifted, so the offset is chosen by the most English-like key.
func KnownPlaintext(ciphertext, fragment string, opts KnownOptions) (model.KnownResult, error) {
	if opts.Top <= 0 {
		opts.Top = defaultTop
	}
	ls := newLetterStream(ciphertext)
	fragRunes := []rune(fragment)
	known := alphabet.Residues(fragment)
	if len(ls.residues) == 0 || len(known) == 0 {
		return model.KnownResult{}, freq.ErrEmptyInput
	}
	if len(known) < 2 {
		return model.KnownResult{}, fmt.Errorf("%w: fragment needs at least two letters", ErrNoAlignment)
	}

	offsets := ls.alignments(fragRunes)
	if len(offsets) == 0 {
		return model.KnownResult{}, fmt.Errorf("%w: fragment does not fit the ciphertext layout", ErrNoAlignment)
	}

	best := newRanking(opts.Top + 1)
	key := make([]int, len(known))
	for _, p := range cipher.AllAffineParams() {
		layer, err := cipher.InvertResidues(ls.residues, p)
		if err != nil {
			return model.KnownResult{}, err
		}
		for _, o := range offsets {
			s := ls.before[o]
			for i, pv := range known {
				key[i] = alphabet.Mod(layer[s+i] - pv)
			}
			period := keyPeriod(key)
			al := model.Alignment{
				Offset:       o,
				LetterOffset: s,
				Params:       p,
				KeyFragment:  alphabet.Word(key),
				Period:       period,
				Consistent:   period > 0,
			}
			if period > 0 {
				al.KeyScore = freq.ScoreResidues(key[:period])
				al.Score = freq.ScoreResidues(peel(layer, key, s, period))
			} else {
				al.KeyScore = freq.ScoreResidues(key)
				al.Score = freq.ScoreResidues(peel(layer, key, s, len(key)))
			}
			best.offer(al)
		}
	}

	ranked := best.items
	if len(ranked) == 0 || (!ranked[0].Consistent && !opts.AllowUnconfirmed) {
		return model.KnownResult{}, ErrNoAlignment
	}
	for i := range ranked {
		ranked[i].Plaintext = previewAlignment(ls, ranked[i])
	}
	result := model.KnownResult{Best: ranked[0], Offsets: len(offsets)}
	if len(ranked) > 1 {
		result.Alternatives = append([]model.Alignment(nil), ranked[1:]...)
	}
	return result, nil
}

// keyPeriod returns the smallest period that repeats in full at least once,
// so every key position is seen twice, or 0.
func keyPeriod(key []int) int {
	for l := 1; 2*l <= len(key); l++ {
		periodic := true
		for i := 0; i+l < len(key); i++ {
			if key[i] != key[i+l] {
				periodic = false
				break
			}
		}
		if periodic {
			return l
		}
	}
	return 0
}

func previewAlignment(ls letterStream, al model.Alignment) string {
	layer, err := cipher.InvertResidues(ls.residues, al.Params)
	if err != nil {
		return ""
	}
	key := alphabet.Residues(al.KeyFragment)
	period := al.Period
	if period == 0 {
		// Assume the key is exactly as long as the fragment.
		period = len(key)
	}
	return ls.render(peel(layer, key, al.LetterOffset, period))
}

// peel removes a key of the given period, anchored at letter offset s, from
// the Vigenère layer.
func peel(layer, key []int, s, period int) []int {
	out := make([]int, len(layer))
	for t, v := range layer {
		idx := (t - s) % period
		if idx < 0 {
			idx += period
		}
		out[t] = alphabet.Mod(v - key[idx])
	}
	return out
}

// ranking keeps the n best alignments.
type ranking struct {
	n     int
	items []model.Alignment
}

func newRanking(n int) *ranking {
	return &ranking{n: n, items: make([]model.Alignment, 0, n+1)}
}

func (r *ranking) offer(al model.Alignment) {
	if len(r.items) == r.n && !alignmentLess(al, r.items[len(r.items)-1]) {
		return
	}
	idx := sort.Search(len(r.items), func(i int) bool {
		return alignmentLess(al, r.items[i])
	})
	r.items = append(r.items, model.Alignment{})
	copy(r.items[idx+1:], r.items[idx:])
	r.items[idx] = al
	if len(r.items) > r.n {
		r.items = r.items[:r.n]
	}
}

func alignmentLess(x, y model.Alignment) bool {
	if x.Consistent != y.Consistent {
		return x.Consistent
	}
	if x.Score != y.Score {
		return x.Score < y.Score
	}
	if x.KeyScore != y.KeyScore {
		return x.KeyScore < y.KeyScore
	}
	if x.Offset != y.Offset {
		return x.Offset < y.Offset
	}
	if x.Params.A != y.Params.A {
		return x.Params.A < y.Params.A
	}
	return x.Params.B < y.Params.B
}
