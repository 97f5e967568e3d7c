package engine

import (
	"fmt"
	"strings"
)

// Kind selects the action a Request performs.
type Kind int

const (
	KindEncrypt Kind = iota
	KindDecrypt
	KindFrequency
	KindKnown
	KindBrute
	KindAffine
)

var kindNames = map[Kind]string{
	KindEncrypt:   "encrypt",
	KindDecrypt:   "decrypt",
	KindFrequency: "frequency",
	KindKnown:     "known",
	KindBrute:     "brute",
	KindAffine:    "affine",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindEncrypt, KindDecrypt, KindFrequency, KindKnown, KindBrute, KindAffine}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name. "freq" is accepted for frequency.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "freq" {
		return KindFrequency, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText encodes the kind by name for JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
