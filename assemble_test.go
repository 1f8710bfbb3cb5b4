package typist

import (
	"reflect"
	"testing"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name    string
		chars   string
		columns int
		want    []string
	}{
		{"exact", "abcdef", 3, []string{"abc", "def"}},
		{"short last row", "abcdefg", 3, []string{"abc", "def", "g"}},
		{"single column", "ab", 1, []string{"a", "b"}},
		{"wide", "ab", 5, []string{"ab"}},
		{"empty", "", 4, []string{}},
		{"multibyte", "あいうえ", 2, []string{"あい", "うえ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble([]rune(tt.chars), tt.columns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAssembleInvalidColumns(t *testing.T) {
	if got := Assemble([]rune("abc"), 0); got != nil {
		t.Errorf("Expected nil for zero columns, got %q", got)
	}
}
