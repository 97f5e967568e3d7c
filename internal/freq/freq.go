// Package freq computes letter distributions and chi-squared scores against English.
package freq

import (
	"errors"
	"math"
	"sort"

	"github.com/verte-zerg/vigaff/internal/alphabet"
)

// ErrEmptyInput is returned when a text has no letters to analyse.
var ErrEmptyInput = errors.New("no alphabetic characters in input")

// Reference is an expected relative frequency per letter, summing to 1.
type Reference [alphabet.Size]float64

// Percentages from a large English corpus, A..Z.
var english = Reference{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
}

// English returns a copy of the reference English letter table.
func English() Reference {
	return english
}

// Profile holds the letter counts of a text sample.
type Profile struct {
	Counts [alphabet.Size]int
	Total  int
}

// LetterFreq is a single entry of a profile, used for reporting.
type LetterFreq struct {
	Letter    string  `json:"letter" yaml:"letter"`
	Count     int     `json:"count" yaml:"count"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// Distribution counts letters case-insensitively.
func Distribution(text string) (Profile, error) {
	p := Count(text)
	if p.Total == 0 {
		return Profile{}, ErrEmptyInput
	}
	return p, nil
}

// Count is Distribution without the empty check.
func Count(text string) Profile {
	var p Profile
	for _, r := range text {
		if x, err := alphabet.Encode(r); err == nil {
			p.Counts[x]++
			p.Total++
		}
	}
	return p
}

// FromCounts builds a profile from raw counts.
func FromCounts(counts [alphabet.Size]int) Profile {
	p := Profile{Counts: counts}
	for _, c := range counts {
		p.Total += c
	}
	return p
}

// Frequency returns the relative frequency of residue i.
func (p Profile) Frequency(i int) float64 {
	if p.Total == 0 || i < 0 || i >= alphabet.Size {
		return 0
	}
	return float64(p.Counts[i]) / float64(p.Total)
}

// MostCommon lists observed letters by descending count, ties alphabetical.
func (p Profile) MostCommon() []LetterFreq {
	out := make([]LetterFreq, 0, alphabet.Size)
	for i, c := range p.Counts {
		if c == 0 {
			continue
		}
		out = append(out, LetterFreq{
			Letter:    string(alphabet.Letters[i]),
			Count:     c,
			Frequency: p.Frequency(i),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ChiSquared sums (observed-expected)^2/expected over the 26 letters, where
// expected is scaled to the observed total. An empty profile scores +Inf.
func ChiSquared(observed Profile, expected Reference) float64 {
	if observed.Total == 0 {
		return math.Inf(1)
	}
	n := float64(observed.Total)
	var chi float64
	for i, c := range observed.Counts {
		exp := expected[i] * n
		if exp <= 0 {
			continue
		}
		d := float64(c) - exp
		chi += d * d / exp
	}
	return chi
}

// Score is the chi-squared of text against English.
func Score(text string) float64 {
	return ChiSquared(Count(text), english)
}

// ScoreCounts is the chi-squared of raw counts against English.
func ScoreCounts(counts [alphabet.Size]int) float64 {
	return ChiSquared(FromCounts(counts), english)
}

// ScoreResidues is the chi-squared of a residue stream against English.
func ScoreResidues(residues []int) float64 {
	var counts [alphabet.Size]int
	for _, v := range residues {
		counts[alphabet.Mod(v)]++
	}
	return ScoreCounts(counts)
}
