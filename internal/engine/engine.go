// Package engine routes front-end requests to the cipher and attack packages.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/vigaff/internal/alphabet"
	"github.com/verte-zerg/vigaff/internal/attack"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/freq"
	"github.com/verte-zerg/vigaff/internal/model"
)

// MinFragmentLetters is the shortest known-plaintext fragment accepted.
const MinFragmentLetters = 4

var (
	// ErrUnknownKind is returned for a Kind outside the enum.
	ErrUnknownKind = errors.New("unknown request kind")
	// ErrShortFragment is returned when a known fragment has too few letters.
	ErrShortFragment = fmt.Errorf("known plaintext needs at least %d letters", MinFragmentLetters)
)

// Request is one front-end action.
type Request struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`

	Key         string              `json:"key,omitempty" yaml:"key,omitempty"`
	Params      cipher.AffineParams `json:"params" yaml:"params"`
	MinKeyLen   int                 `json:"min_key_len,omitempty" yaml:"min_key_len,omitempty"`
	LettersOnly bool                `json:"letters_only,omitempty" yaml:"letters_only,omitempty"`

	Fragment         string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	AllowUnconfirmed bool   `json:"allow_unconfirmed,omitempty" yaml:"allow_unconfirmed,omitempty"`

	MaxKeyLen int      `json:"max_key_len,omitempty" yaml:"max_key_len,omitempty"`
	Guesses   []string `json:"guesses,omitempty" yaml:"guesses,omitempty"`
	Threshold float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Top       int      `json:"top,omitempty" yaml:"top,omitempty"`
}

// Response carries the result of whichever action ran.
type Response struct {
	ID         string                 `json:"id" yaml:"id"`
	Kind       Kind                   `json:"kind" yaml:"kind"`
	Text       string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Frequency  *model.FrequencyReport `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Known      *model.KnownResult     `json:"known,omitempty" yaml:"known,omitempty"`
	Candidates []model.Candidate      `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Elapsed    time.Duration          `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// NewRequest returns a request of the given kind with a fresh ID.
func NewRequest(kind Kind) Request {
	return Request{ID: uuid.NewString(), Kind: kind}
}

// Dispatch validates req at the boundary and runs it.
func Dispatch(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := Response{ID: req.ID, Kind: req.Kind}
	start := time.Now()
	var err error
	switch req.Kind {
	case KindEncrypt:
		resp.Text, err = runCipher(req, cipher.Encrypt)
	case KindDecrypt:
		resp.Text, err = runCipher(req, cipher.Decrypt)
	case KindFrequency:
		resp.Frequency, err = Frequency(req.Text)
	case KindKnown:
		resp.Known, err = runKnown(req)
	case KindBrute:
		resp.Candidates, err = attack.BruteForce(ctx, req.Text, attack.BruteOptions{
			MaxKeyLen: req.MaxKeyLen,
			Guesses:   req.Guesses,
			Threshold: req.Threshold,
			Top:       req.Top,
		})
	case KindAffine:
		resp.Candidates, err = attack.BruteForceAffine(req.Text, req.Top)
	default:
		return Response{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(req.Kind))
	}
	if err != nil {
		return Response{}, err
	}
	resp.Elapsed = time.Since(start)
	return resp, nil
}

// Frequency builds the letter report of text.
func Frequency(text string) (*model.FrequencyReport, error) {
	p, err := freq.Distribution(text)
	if err != nil {
		return nil, err
	}
	return &model.FrequencyReport{
		Letters:    p.MostCommon(),
		Total:      p.Total,
		ChiSquared: freq.ChiSquared(p, freq.English()),
	}, nil
}

func runCipher(req Request, fn func(text, key string, p cipher.AffineParams) (string, error)) (string, error) {
	minLen := req.MinKeyLen
	if minLen <= 0 {
		minLen = cipher.MinKeyLength
	}
	if err := cipher.ValidateKey(req.Key, minLen); err != nil {
		return "", err
	}
	text := req.Text
	if req.LettersOnly && req.Kind == KindEncrypt {
		text = cipher.LettersOnly(text)
	}
	return fn(text, req.Key, req.Params)
}

func runKnown(req Request) (*model.KnownResult, error) {
	if n := len(alphabet.Residues(req.Fragment)); n > 0 && n < MinFragmentLetters {
		return nil, ErrShortFragment
	}
	res, err := attack.KnownPlaintext(req.Text, req.Fragment, attack.KnownOptions{
		Top:              req.Top,
		AllowUnconfirmed: req.AllowUnconfirmed,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
