package attack

import (
	"context"
	"math"
	"sort"

	"github.com/verte-zerg/vigaff/internal/alphabet"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/freq"
	"github.com/verte-zerg/vigaff/internal/model"
)

const (
	// SourceHeuristic marks keys solved column by column.
	SourceHeuristic = "heuristic"
	// SourceGuess marks keys taken from a guess list.
	SourceGuess = "guess"
	// SourceAffine marks affine-only candidates.
	SourceAffine = "affine"

	// DefaultMaxKeyLen is the longest heuristic key tried by the front-ends.
	DefaultMaxKeyLen = 12
	// DefaultTop is the number of candidates the front-ends show.
	DefaultTop = 10
)

// BruteOptions tunes BruteForce.
type BruteOptions struct {
	// MaxKeyLen bounds the heuristic key lengths tried (1..MaxKeyLen).
	MaxKeyLen int
	// Guesses are extra Vigenère keys tried for every affine pair.
	Guesses []string
	// Threshold drops candidates scoring above it. Zero disables it.
	Threshold float64
	// Top truncates the result. Zero keeps every pair.
	Top int
}

type hit struct {
	params   cipher.AffineParams
	key      []int
	plain    []int
	score    float64
	keyScore float64
	source   string
}

func (h hit) betterThan(o hit) bool {
	if h.score != o.score {
		return h.score < o.score
	}
	if h.keyScore != o.keyScore {
		return h.keyScore < o.keyScore
	}
	return len(h.key) < len(o.key)
}

// BruteForce tries every valid affine pair and, for each, short Vigenère keys
// solved per column plus the provided guesses. The best key per pair is kept
// and the pairs are returned ordered by chi-squared, best first. The affine
// offset folds into the Vigenère key, so pairs sharing a multiplier tie on the
// text score; the key score breaks the tie in favour of English-like keys.
func BruteForce(ctx context.Context, ciphertext string, opts BruteOptions) ([]model.Candidate, error) {
	ls := newLetterStream(ciphertext)
	if len(ls.residues) == 0 {
		return nil, freq.ErrEmptyInput
	}
	guesses := make([][]int, 0, len(opts.Guesses))
	for _, g := range opts.Guesses {
		if res := alphabet.Residues(g); len(res) > 0 {
			guesses = append(guesses, res)
		}
	}
	if opts.MaxKeyLen < 1 && len(guesses) == 0 {
		return nil, &cipher.InvalidKeyError{}
	}

	hits := make([]hit, 0, 312)
	for _, p := range cipher.AllAffineParams() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		layer, err := cipher.InvertResidues(ls.residues, p)
		if err != nil {
			return nil, err
		}
		best := hit{score: math.Inf(1)}
		for l := 1; l <= opts.MaxKeyLen && l <= len(layer); l++ {
			h := scoreKey(layer, solveColumns(layer, l), SourceHeuristic)
			if h.betterThan(best) {
				best = h
			}
		}
		for _, g := range guesses {
			h := scoreKey(layer, g, SourceGuess)
			if h.betterThan(best) {
				best = h
			}
		}
		if math.IsInf(best.score, 1) {
			continue
		}
		if opts.Threshold > 0 && best.score > opts.Threshold {
			continue
		}
		best.params = p
		hits = append(hits, best)
	}

	sortHits(hits)
	if opts.Top > 0 && len(hits) > opts.Top {
		hits = hits[:opts.Top]
	}
	return toCandidates(ls, hits), nil
}

// BruteForceAffine ranks the 312 pairs by the chi-squared of the affine-only
// decryption, ignoring the Vigenère layer.
func BruteForceAffine(ciphertext string, top int) ([]model.Candidate, error) {
	ls := newLetterStream(ciphertext)
	if len(ls.residues) == 0 {
		return nil, freq.ErrEmptyInput
	}
	hits := make([]hit, 0, 312)
	for _, p := range cipher.AllAffineParams() {
		plain, err := cipher.InvertResidues(ls.residues, p)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit{
			params: p,
			plain:  plain,
			score:  freq.ScoreResidues(plain),
			source: SourceAffine,
		})
	}
	sortHits(hits)
	if top > 0 && len(hits) > top {
		hits = hits[:top]
	}
	return toCandidates(ls, hits), nil
}

// solveColumns picks, for every key position, the shift whose column
// decryption is closest to English.
func solveColumns(layer []int, length int) []int {
	key := make([]int, length)
	for col := 0; col < length; col++ {
		var counts [alphabet.Size]int
		for t := col; t < len(layer); t += length {
			counts[layer[t]]++
		}
		bestShift := 0
		bestScore := math.Inf(1)
		for shift := 0; shift < alphabet.Size; shift++ {
			var shifted [alphabet.Size]int
			for j := range shifted {
				shifted[j] = counts[(j+shift)%alphabet.Size]
			}
			if s := freq.ScoreCounts(shifted); s < bestScore {
				bestScore = s
				bestShift = shift
			}
		}
		key[col] = bestShift
	}
	return key
}

func scoreKey(layer, key []int, source string) hit {
	plain := make([]int, len(layer))
	for t, v := range layer {
		plain[t] = alphabet.Mod(v - key[t%len(key)])
	}
	return hit{
		key:      key,
		plain:    plain,
		score:    freq.ScoreResidues(plain),
		keyScore: freq.ScoreResidues(key),
		source:   source,
	}
}

func sortHits(hits []hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		x, y := hits[i], hits[j]
		if x.score != y.score {
			return x.score < y.score
		}
		if x.keyScore != y.keyScore {
			return x.keyScore < y.keyScore
		}
		if x.params.A != y.params.A {
			return x.params.A < y.params.A
		}
		return x.params.B < y.params.B
	})
}

func toCandidates(ls letterStream, hits []hit) []model.Candidate {
	out := make([]model.Candidate, 0, len(hits))
	for _, h := range hits {
		c := model.Candidate{
			Plaintext: ls.render(h.plain),
			Score:     h.score,
			KeyScore:  h.keyScore,
			Params:    h.params,
			Source:    h.source,
		}
		if len(h.key) > 0 {
			c.Key = alphabet.Word(h.key)
		}
		out = append(out, c)
	}
	return out
}
