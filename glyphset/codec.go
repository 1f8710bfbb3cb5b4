package glyphset

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wbrown/typist"
)

// Record is the on-disk shape of one catalog entry.
type Record struct {
	Character      string    `json:"character" msgpack:"character"`
	Luminance      float64   `json:"luminance" msgpack:"luminance"`
	Characteristic []float64 `json:"characteristic" msgpack:"characteristic"`
}

// Format identifies a catalog file encoding.
type Format int

const (
	// FormatJSON is a JSON array of records.
	FormatJSON Format = iota
	// FormatMsgpack is a MessagePack array of records.
	FormatMsgpack
	// FormatGlyphs is a gzip-compressed gob stream of records.
	FormatGlyphs
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatGlyphs:
		return "glyphs"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension:
// .msgpack/.mpk, .glyphs/.gob, anything else JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return FormatMsgpack
	case ".glyphs", ".gob":
		return FormatGlyphs
	}
	return FormatJSON
}

// ToRecords converts catalog entries to records, preserving order.
func ToRecords(entries []typist.GlyphEntry) []Record {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = Record{
			Character:      string(e.Character),
			Luminance:      e.Luminance,
			Characteristic: e.Features,
		}
	}
	return records
}

// FromRecords converts records to catalog entries, preserving order. Every
// record must hold exactly one character.
func FromRecords(records []Record) ([]typist.GlyphEntry, error) {
	entries := make([]typist.GlyphEntry, len(records))
	for i, rec := range records {
		if utf8.RuneCountInString(rec.Character) != 1 {
			return nil, fmt.Errorf("record %d: character %q is not a single rune", i, rec.Character)
		}
		r, _ := utf8.DecodeRuneInString(rec.Character)
		if r == utf8.RuneError {
			return nil, fmt.Errorf("record %d: invalid UTF-8 character", i)
		}
		entries[i] = typist.GlyphEntry{
			Character: r,
			Luminance: rec.Luminance,
			Features:  rec.Characteristic,
		}
	}
	return entries, nil
}

// Encode writes entries to w in the given format.
func Encode(w io.Writer, entries []typist.GlyphEntry, format Format) error {
	records := ToRecords(entries)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(records); err != nil {
			return fmt.Errorf("failed to encode msgpack: %w", err)
		}
	case FormatGlyphs:
		gz := gzip.NewWriter(w)
		if err := gob.NewEncoder(gz).Encode(records); err != nil {
			gz.Close()
			return fmt.Errorf("failed to encode data: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to close gzip: %w", err)
		}
	default:
		return fmt.Errorf("unknown catalog format %v", format)
	}
	return nil
}

// Decode reads entries in the given format from r. Entries are returned in
// file order; use Load or typist.Catalog.Validate to check the ordering.
func Decode(r io.Reader, format Format) ([]typist.GlyphEntry, error) {
	var records []Record
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode msgpack: %w", err)
		}
	case FormatGlyphs:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gr.Close()
		if err := gob.NewDecoder(gr).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode glyph data: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %v", format)
	}
	return FromRecords(records)
}

// Load reads a catalog file, picking the format from its extension, and
// validates that it is sorted and well-formed.
func Load(path string) (*typist.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	entries, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	catalog := typist.NewCatalog(entries)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid catalog: %w", path, err)
	}
	return catalog, nil
}

// Save writes entries to path, picking the format from its extension.
func Save(path string, entries []typist.GlyphEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	if err := Encode(f, entries, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
