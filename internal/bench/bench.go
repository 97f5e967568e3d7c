// Package bench times the combined cipher against Vigenère alone.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/generator"
	"github.com/verte-zerg/vigaff/internal/model"
)

const (
	// DefaultRepeats is the number of timed runs averaged per measurement.
	DefaultRepeats = 3
	// DefaultKey is used when no key is configured.
	DefaultKey = "LEMONLEMONLE"
)

// DefaultSizes are the input sizes measured when none are configured.
var DefaultSizes = []int{100, 1000, 5000, 10000}

// DefaultParams is the affine pair used when none is configured.
var DefaultParams = cipher.AffineParams{A: 5, B: 8}

// Options describes one harness run.
type Options struct {
	Config model.BenchConfig
	// Params defaults to DefaultParams when nil.
	Params *cipher.AffineParams
	// Words feed the sample text; empty means the repeated pangram.
	Words []string
	Gen   *generator.Generator
}

type transform func(text string) (string, error)

// Run measures, per input size, combined encrypt/decrypt and Vigenère-only
// encrypt/decrypt, each averaged over the configured repeats.
func Run(ctx context.Context, opts Options) ([]model.BenchRow, error) {
	cfg := opts.Config
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = DefaultSizes
	}
	if cfg.Repeats <= 0 {
		cfg.Repeats = DefaultRepeats
	}
	params := DefaultParams
	if opts.Params != nil {
		params = *opts.Params
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := cipher.KeyShifts(cfg.Key); err != nil {
		return nil, err
	}
	gen := opts.Gen
	if gen == nil {
		gen = generator.New()
	}

	combinedEnc := func(s string) (string, error) { return cipher.Encrypt(s, cfg.Key, params) }
	combinedDec := func(s string) (string, error) { return cipher.Decrypt(s, cfg.Key, params) }
	vigEnc := func(s string) (string, error) { return cipher.Vigenere(s, cfg.Key, cipher.DirEncrypt) }
	vigDec := func(s string) (string, error) { return cipher.Vigenere(s, cfg.Key, cipher.DirDecrypt) }

	rows := make([]model.BenchRow, 0, len(cfg.Sizes))
	for _, size := range cfg.Sizes {
		if size <= 0 {
			return nil, fmt.Errorf("invalid bench size %d", size)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sample := gen.Text(opts.Words, size)
		row := model.BenchRow{Size: size}

		var ct, vt, pt, vp string
		var err error
		if row.CombinedEnc, ct, err = timeAvg(combinedEnc, sample, cfg.Repeats); err != nil {
			return nil, err
		}
		if row.CombinedDec, pt, err = timeAvg(combinedDec, ct, cfg.Repeats); err != nil {
			return nil, err
		}
		if row.VigenereEnc, vt, err = timeAvg(vigEnc, sample, cfg.Repeats); err != nil {
			return nil, err
		}
		if row.VigenereDec, vp, err = timeAvg(vigDec, vt, cfg.Repeats); err != nil {
			return nil, err
		}
		row.RoundTripSame = pt == sample && vp == sample
		rows = append(rows, row)
	}
	return rows, nil
}

// timeAvg runs fn repeats times on input and returns the mean duration and
// the last output.
func timeAvg(fn transform, input string, repeats int) (time.Duration, string, error) {
	var total time.Duration
	var out string
	for i := 0; i < repeats; i++ {
		start := time.Now()
		res, err := fn(input)
		total += time.Since(start)
		if err != nil {
			return 0, "", err
		}
		out = res
	}
	return total / time.Duration(repeats), out, nil
}
