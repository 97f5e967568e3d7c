// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/freq"
)

// CipherConfig defines encrypt/decrypt settings.
type CipherConfig struct {
	Key         string
	Params      cipher.AffineParams
	MinKeyLen   int
	LettersOnly bool
}

// AttackConfig defines cryptanalysis settings.
type AttackConfig struct {
	MaxKeyLen  int
	Top        int
	Threshold  float64
	Dictionary string
}

// BenchConfig defines efficiency harness settings.
type BenchConfig struct {
	Key     string
	Sizes   []int
	Repeats int
}

// Candidate is a scored decryption guess. Lower scores are more English-like.
type Candidate struct {
	Plaintext string              `json:"plaintext" yaml:"plaintext"`
	Score     float64             `json:"score" yaml:"score"`
	KeyScore  float64             `json:"key_score" yaml:"key_score"`
	Params    cipher.AffineParams `json:"params" yaml:"params"`
	Key       string              `json:"key,omitempty" yaml:"key,omitempty"`
	Source    string              `json:"source,omitempty" yaml:"source,omitempty"`
}

// FrequencyReport is a letter distribution with its distance from English.
type FrequencyReport struct {
	Letters    []freq.LetterFreq `json:"letters" yaml:"letters"`
	Total      int               `json:"total" yaml:"total"`
	ChiSquared float64           `json:"chi_squared" yaml:"chi_squared"`
}

// Alignment is one placement of a known fragment over the ciphertext.
type Alignment struct {
	Offset       int                 `json:"offset" yaml:"offset"`
	LetterOffset int                 `json:"letter_offset" yaml:"letter_offset"`
	Params       cipher.AffineParams `json:"params" yaml:"params"`
	KeyFragment  string              `json:"key_fragment" yaml:"key_fragment"`
	Period       int                 `json:"period" yaml:"period"`
	Consistent   bool                `json:"consistent" yaml:"consistent"`
	Score        float64             `json:"score" yaml:"score"`
	KeyScore     float64             `json:"key_score" yaml:"key_score"`
	Plaintext    string              `json:"plaintext,omitempty" yaml:"plaintext,omitempty"`
}

// KnownResult is the outcome of a known-plaintext attack.
type KnownResult struct {
	Best         Alignment   `json:"best" yaml:"best"`
	Alternatives []Alignment `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Offsets      int         `json:"offsets" yaml:"offsets"`
}

// BenchRow is one input size of the efficiency harness. Durations are averages.
type BenchRow struct {
	Size          int           `json:"size" yaml:"size"`
	CombinedEnc   time.Duration `json:"combined_enc_ns" yaml:"combined_enc_ns"`
	CombinedDec   time.Duration `json:"combined_dec_ns" yaml:"combined_dec_ns"`
	VigenereEnc   time.Duration `json:"vigenere_enc_ns" yaml:"vigenere_enc_ns"`
	VigenereDec   time.Duration `json:"vigenere_dec_ns" yaml:"vigenere_dec_ns"`
	RoundTripSame bool          `json:"round_trip_ok" yaml:"round_trip_ok"`
}

// Dictionary summarizes a stored key guess list.
type Dictionary struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Source    string    `json:"source" yaml:"source"`
	Keys      int       `json:"keys" yaml:"keys"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
