package alphabet

import (
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	for i := 0; i < Size; i++ {
		upper := Decode(i, true)
		lower := Decode(i, false)
		if upper != rune(Letters[i]) {
			t.Fatalf("Decode(%d, true) = %q", i, upper)
		}
		got, err := Encode(upper)
		if err != nil || got != i {
			t.Fatalf("Encode(%q) = %d, %v", upper, got, err)
		}
		got, err = Encode(lower)
		if err != nil || got != i {
			t.Fatalf("Encode(%q) = %d, %v", lower, got, err)
		}
	}
}

func TestEncodeRejectsNonLetters(t *testing.T) {
	for _, r := range []rune{' ', '1', '.', 'é', 'Ж'} {
		if _, err := Encode(r); !errors.Is(err, ErrNotLetter) {
			t.Fatalf("expected ErrNotLetter for %q, got %v", r, err)
		}
		if IsLetter(r) {
			t.Fatalf("IsLetter(%q) should be false", r)
		}
	}
}

func TestDecodeReducesResidue(t *testing.T) {
	if got := Decode(-1, true); got != 'Z' {
		t.Fatalf("expected Z, got %q", got)
	}
	if got := Decode(27, false); got != 'b' {
		t.Fatalf("expected b, got %q", got)
	}
}

func TestResiduesAndWord(t *testing.T) {
	res := Residues("Hi, Bob!")
	if Word(res) != "HIBOB" {
		t.Fatalf("unexpected word: %q", Word(res))
	}
}
