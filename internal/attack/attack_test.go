package attack

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/freq"
)

const dickens = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity, " +
	"it was the season of Light, it was the season of Darkness, it was the spring of hope, " +
	"it was the winter of despair, we had everything before us, we had nothing before us."

func mustEncrypt(t *testing.T, text, key string, p cipher.AffineParams) string {
	t.Helper()
	ct, err := cipher.Encrypt(text, key, p)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return ct
}

func TestKnownPlaintextRecoversParams(t *testing.T) {
	ct := mustEncrypt(t, "THE QUICK BROWN FOX", "ETETETETET", cipher.AffineParams{A: 3, B: 7})
	res, err := KnownPlaintext(ct, "QUICK", KnownOptions{})
	if err != nil {
		t.Fatalf("KnownPlaintext failed: %v", err)
	}
	best := res.Best
	if best.Params != (cipher.AffineParams{A: 3, B: 7}) {
		t.Fatalf("expected a=3 b=7, got %v", best.Params)
	}
	if best.KeyFragment != "TETET" {
		t.Fatalf("expected fragment TETET, got %s", best.KeyFragment)
	}
	if best.Offset != 4 || best.LetterOffset != 3 {
		t.Fatalf("unexpected offsets: %d/%d", best.Offset, best.LetterOffset)
	}
	if !best.Consistent || best.Period != 2 {
		t.Fatalf("expected a consistent period-2 alignment, got %+v", best)
	}
	if best.Plaintext != "THE QUICK BROWN FOX" {
		t.Fatalf("unexpected plaintext: %q", best.Plaintext)
	}
	if len(res.Alternatives) == 0 {
		t.Fatalf("expected alternatives")
	}
}

func TestKnownPlaintextLongFragment(t *testing.T) {
	const fragment = "It was the best of times, it was the worst"
	for _, p := range []cipher.AffineParams{{A: 3, B: 7}, {A: 5, B: 8}} {
		ct := mustEncrypt(t, dickens, "LEMONLEMONLE", p)
		res, err := KnownPlaintext(ct, fragment, KnownOptions{})
		if err != nil {
			t.Fatalf("KnownPlaintext(%v) failed: %v", p, err)
		}
		best := res.Best
		if best.Params != p || best.Offset != 0 || best.Period != 12 {
			t.Fatalf("%v: unexpected best alignment %+v", p, best)
		}
		if best.KeyFragment != "LEMONLEMONLELEMONLEMONLELEMONLEM" {
			t.Fatalf("%v: unexpected key fragment %s", p, best.KeyFragment)
		}
		if best.Plaintext != dickens {
			t.Fatalf("%v: unexpected plaintext %q", p, best.Plaintext)
		}
	}
}

func TestKnownPlaintextNeedsFullRepeat(t *testing.T) {
	// None of these key streams repeats in full inside a five letter fragment.
	keys := []string{"LEMONLEMONLE", "KEYWORDKEYS", "XQZXQZXQZX", "JXVJXVJXVJ", "TENTENTENT"}
	for _, key := range keys {
		for _, p := range []cipher.AffineParams{{A: 3, B: 7}, {A: 5, B: 8}} {
			ct := mustEncrypt(t, "THE QUICK BROWN FOX", key, p)
			res, err := KnownPlaintext(ct, "QUICK", KnownOptions{})
			if !errors.Is(err, ErrNoAlignment) {
				t.Fatalf("key %s %v: expected ErrNoAlignment, got %v (%+v)", key, p, err, res.Best)
			}
		}
	}
	// Period 12 needs 24 letters; this fragment has 19.
	ct := mustEncrypt(t, dickens, "LEMONLEMONLE", cipher.AffineParams{A: 3, B: 7})
	if _, err := KnownPlaintext(ct, "It was the best of times", KnownOptions{}); !errors.Is(err, ErrNoAlignment) {
		t.Fatalf("expected ErrNoAlignment for a fragment shorter than two periods, got %v", err)
	}
}

func TestKnownPlaintextUnusualKey(t *testing.T) {
	// The offset b folds into the key, so only the multiplier and the
	// plaintext are fixed when the key is not English-like.
	cases := []struct {
		text     string
		key      string
		fragment string
		period   int
	}{
		{text: "THE QUICK BROWN FOX", key: "XQXQXQXQXQ", fragment: "QUICK", period: 2},
		{text: dickens, key: "QXZJQXZJQXZJ", fragment: "It was the best of times", period: 4},
	}
	for _, tc := range cases {
		ct := mustEncrypt(t, tc.text, tc.key, cipher.AffineParams{A: 3, B: 7})
		res, err := KnownPlaintext(ct, tc.fragment, KnownOptions{})
		if err != nil {
			t.Fatalf("key %s: KnownPlaintext failed: %v", tc.key, err)
		}
		best := res.Best
		if best.Params.A != 3 || !best.Consistent || best.Period != tc.period {
			t.Fatalf("key %s: unexpected best alignment %+v", tc.key, best)
		}
		if best.Plaintext != tc.text {
			t.Fatalf("key %s: unexpected plaintext %q", tc.key, best.Plaintext)
		}
	}
}

func TestKnownPlaintextEmptyInput(t *testing.T) {
	if _, err := KnownPlaintext("123 !", "QUICK", KnownOptions{}); !errors.Is(err, freq.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := KnownPlaintext("ABC", "", KnownOptions{}); !errors.Is(err, freq.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput for empty fragment, got %v", err)
	}
}

func TestKnownPlaintextLayoutMismatch(t *testing.T) {
	_, err := KnownPlaintext("ABCDEFG", "AB CD", KnownOptions{})
	if !errors.Is(err, ErrNoAlignment) {
		t.Fatalf("expected ErrNoAlignment, got %v", err)
	}
	_, err = KnownPlaintext("ABC", "ABCDEF", KnownOptions{})
	if !errors.Is(err, ErrNoAlignment) {
		t.Fatalf("expected ErrNoAlignment for a fragment longer than the text, got %v", err)
	}
}

func TestKnownPlaintextUnconfirmed(t *testing.T) {
	// A key as long as the fragment never repeats inside it.
	ct := mustEncrypt(t, "HELLO", "QWERT", cipher.AffineParams{A: 3, B: 7})
	if _, err := KnownPlaintext(ct, "HELLO", KnownOptions{}); !errors.Is(err, ErrNoAlignment) {
		t.Fatalf("expected ErrNoAlignment, got %v", err)
	}
	res, err := KnownPlaintext(ct, "HELLO", KnownOptions{AllowUnconfirmed: true})
	if err != nil {
		t.Fatalf("KnownPlaintext failed: %v", err)
	}
	if res.Best.Consistent {
		t.Fatalf("expected an unconfirmed alignment, got %+v", res.Best)
	}
	if res.Best.Plaintext == "" {
		t.Fatalf("expected a preview plaintext")
	}
}

func TestBruteForceRanksTruePairFirst(t *testing.T) {
	cases := []struct {
		key string
		p   cipher.AffineParams
		got string
	}{
		{key: "LEMONLEMON", p: cipher.AffineParams{A: 5, B: 8}, got: "LEMON"},
		{key: "SECRETSECRET", p: cipher.AffineParams{A: 7, B: 3}, got: "SECRET"},
	}
	for _, tc := range cases {
		ct := mustEncrypt(t, dickens, tc.key, tc.p)
		cands, err := BruteForce(context.Background(), ct, BruteOptions{MaxKeyLen: 6, Top: 3})
		if err != nil {
			t.Fatalf("BruteForce failed: %v", err)
		}
		if len(cands) != 3 {
			t.Fatalf("expected 3 candidates, got %d", len(cands))
		}
		best := cands[0]
		if best.Params != tc.p || best.Key != tc.got {
			t.Fatalf("key %s: unexpected best candidate %v %s", tc.key, best.Params, best.Key)
		}
		if best.Plaintext != dickens {
			t.Fatalf("unexpected plaintext: %q", best.Plaintext)
		}
		if best.Source != SourceHeuristic {
			t.Fatalf("unexpected source %q", best.Source)
		}
		for i := 1; i < len(cands); i++ {
			if cands[i].Score < cands[i-1].Score {
				t.Fatalf("candidates not sorted by score")
			}
		}
	}
}

func TestBruteForceOffsetTiesOnKeyScore(t *testing.T) {
	// Every b for the true a yields the same plaintext; only the key score
	// orders them, so an unusual key pushes the true pair down that block.
	ct := mustEncrypt(t, dickens, "QXZJQXZJQX", cipher.AffineParams{A: 3, B: 7})
	cands, err := BruteForce(context.Background(), ct, BruteOptions{MaxKeyLen: 10, Top: 26})
	if err != nil {
		t.Fatalf("BruteForce failed: %v", err)
	}
	found := false
	for _, c := range cands {
		if c.Params.A != 3 || c.Plaintext != dickens {
			t.Fatalf("expected the a=3 block first, got %+v", c)
		}
		if math.Abs(c.Score-cands[0].Score) > 1e-9 {
			t.Fatalf("expected equal scores inside the block, got %v and %v", c.Score, cands[0].Score)
		}
		if c.Params.B == 7 {
			found = true
			if c.Key != "QXZJQXZJQX" {
				t.Fatalf("unexpected key for the true pair: %s", c.Key)
			}
		}
	}
	if !found {
		t.Fatalf("true pair missing from the a=3 block")
	}
}

func TestBruteForceUsesGuesses(t *testing.T) {
	ct := mustEncrypt(t, dickens, "LEMONLEMONLE", cipher.AffineParams{A: 3, B: 7})
	cands, err := BruteForce(context.Background(), ct, BruteOptions{
		Guesses: []string{"lemonlemonle", "SECRET", "  "},
		Top:     2,
	})
	if err != nil {
		t.Fatalf("BruteForce failed: %v", err)
	}
	best := cands[0]
	if best.Params != (cipher.AffineParams{A: 3, B: 7}) || best.Key != "LEMONLEMONLE" || best.Source != SourceGuess {
		t.Fatalf("unexpected best candidate: %+v", best)
	}
	if best.Plaintext != dickens {
		t.Fatalf("unexpected plaintext: %q", best.Plaintext)
	}
}

func TestBruteForceThreshold(t *testing.T) {
	ct := mustEncrypt(t, dickens, "LEMONLEMON", cipher.AffineParams{A: 5, B: 8})
	cands, err := BruteForce(context.Background(), ct, BruteOptions{MaxKeyLen: 5, Threshold: 100})
	if err != nil {
		t.Fatalf("BruteForce failed: %v", err)
	}
	if len(cands) == 0 || len(cands) >= 312 {
		t.Fatalf("expected threshold to keep some but not all pairs, got %d", len(cands))
	}
	for _, c := range cands {
		if c.Score > 100 {
			t.Fatalf("candidate above threshold: %v", c.Score)
		}
	}
}

func TestBruteForceErrors(t *testing.T) {
	if _, err := BruteForce(context.Background(), "...", BruteOptions{MaxKeyLen: 3}); !errors.Is(err, freq.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := BruteForce(context.Background(), "abc", BruteOptions{}); !errors.Is(err, cipher.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BruteForce(ctx, "abc", BruteOptions{MaxKeyLen: 2}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBruteForceAffine(t *testing.T) {
	ct, err := cipher.Affine(dickens, cipher.AffineParams{A: 5, B: 8}, cipher.DirEncrypt)
	if err != nil {
		t.Fatalf("Affine failed: %v", err)
	}
	cands, err := BruteForceAffine(ct, 5)
	if err != nil {
		t.Fatalf("BruteForceAffine failed: %v", err)
	}
	if len(cands) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(cands))
	}
	if cands[0].Params != (cipher.AffineParams{A: 5, B: 8}) || cands[0].Plaintext != dickens {
		t.Fatalf("unexpected best candidate: %+v", cands[0])
	}
	if cands[0].Key != "" || cands[0].Source != SourceAffine {
		t.Fatalf("affine candidates carry no key: %+v", cands[0])
	}
	all, err := BruteForceAffine(ct, 0)
	if err != nil {
		t.Fatalf("BruteForceAffine failed: %v", err)
	}
	if len(all) != 312 {
		t.Fatalf("expected 312 candidates, got %d", len(all))
	}
}
