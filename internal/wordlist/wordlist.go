// Package wordlist loads word and key lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/vigaff/internal/cipher"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	var words []string
	err := scanLines(path, func(line string) {
		words = append(words, line)
	})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadKeys reads candidate keys, one per line. Each key keeps its letters
// only, uppercased; empty results and duplicates are dropped.
func LoadKeys(path string) ([]string, error) {
	var keys []string
	seen := map[string]struct{}{}
	err := scanLines(path, func(line string) {
		if strings.HasPrefix(line, "#") {
			return
		}
		key := cipher.LettersOnly(line)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	})
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("key list %s has no usable keys", path)
	}
	return keys, nil
}

func scanLines(path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only list.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
