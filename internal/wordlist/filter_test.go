package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestASCIIWords(t *testing.T) {
	if !ASCIIWords("hello") {
		t.Fatalf("expected hello to pass")
	}
	for _, word := range []string{"", "résumé", "naïve", "don’t", "co-op", "Hello"} {
		if ASCIIWords(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterMaxLen(t *testing.T) {
	got := FilterMaxLen([]string{"LEMON", "SECRET", "KEY", "LEMONLEMONLE"}, 6)
	if len(got) != 3 || got[0] != "LEMON" || got[1] != "SECRET" || got[2] != "KEY" {
		t.Fatalf("unexpected filtered keys: %v", got)
	}
	if got := FilterMaxLen([]string{"A", "BBBBBBB"}, 0); len(got) != 2 {
		t.Fatalf("expected n<=0 to keep everything, got %v", got)
	}
}

func TestLoadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	content := "# comment\nlemon\n  Lemon  \nse-cret\n\n123\nKEY\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	keys, err := LoadKeys(path)
	if err != nil {
		t.Fatalf("LoadKeys failed: %v", err)
	}
	want := []string{"LEMON", "SECRET", "KEY"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

func TestLoadKeysRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte("123\n---\n"), 0o644); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	if _, err := LoadKeys(path); err == nil {
		t.Fatalf("expected an error for a list without letters")
	}
	if _, err := LoadKeys(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\n\n beta \n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 2 || words[1] != "beta" {
		t.Fatalf("unexpected words: %v", words)
	}
}
