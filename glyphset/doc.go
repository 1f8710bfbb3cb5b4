// Package glyphset builds and stores the glyph catalogs typist matches
// against.
//
// A catalog is produced by rendering each character of a rune set in
// black on a white square cell, sampling the per-pixel luminance, and
// normalizing the whole set by its own luminance range with the same
// convention the converter applies to image tiles. Entries come out sorted
// ascending by mean luminance, ready for typist.NewCatalog.
//
// Catalog files hold an ordered list of records
//
//	{"character": "A", "luminance": 0.82, "characteristic": [1, 1, 0.4, ...]}
//
// encoded as JSON (.json), MessagePack (.msgpack) or gzip-compressed gob
// (.glyphs).
package glyphset
