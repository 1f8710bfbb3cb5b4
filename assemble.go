package typist

// Assemble lays chars out in rows of columns characters. A short final
// chunk is emitted as-is. columns <= 0 yields nil.
func Assemble(chars []rune, columns int) []string {
	if columns <= 0 {
		return nil
	}
	rows := make([]string, 0, (len(chars)+columns-1)/columns)
	for start := 0; start < len(chars); start += columns {
		end := min(start+columns, len(chars))
		rows = append(rows, string(chars[start:end]))
	}
	return rows
}
