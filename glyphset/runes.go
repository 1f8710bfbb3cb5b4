package glyphset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode"
)

// DefaultRunes returns the printable ASCII characters, space included.
func DefaultRunes() []rune {
	runes := make([]rune, 0, 95)
	for r := rune(32); r <= rune(126); r++ {
		runes = append(runes, r)
	}
	return runes
}

// ReadRunes reads a character list: every rune of the input except line
// breaks and other control characters, in order of first appearance.
func ReadRunes(r io.Reader) ([]rune, error) {
	br := bufio.NewReader(r)
	seen := make(map[rune]bool)
	var runes []rune
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read characters: %w", err)
		}
		if unicode.IsControl(c) || c == unicode.ReplacementChar || c == '\uFEFF' || seen[c] {
			continue
		}
		seen[c] = true
		runes = append(runes, c)
	}
	return runes, nil
}

// LoadRunes reads a character list file.
func LoadRunes(path string) ([]rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open character list: %w", err)
	}
	defer f.Close()
	return ReadRunes(f)
}
