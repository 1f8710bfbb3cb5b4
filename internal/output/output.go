// Package output writes conversion results as plain text, an HTML page,
// JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/wbrown/typist"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultHTMLFile is the file the html format is written to when no path
// is given.
const DefaultHTMLFile = "typistArt.html"

const (
	htmlHeader = "<!DOCTYPE html>\n<html lang=\"ja\">\n<body>\n<pre>"
	htmlFooter = "\n</pre>\n</body>\n</html>\n"
)

// Document is the structured form used by the json and yaml formats.
type Document struct {
	Columns     int      `json:"columns" yaml:"columns"`
	Rows        int      `json:"rows" yaml:"rows"`
	TileSize    int      `json:"tile_size" yaml:"tile_size"`
	Art         []string `json:"art" yaml:"art"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewDocument converts a result to its structured form.
func NewDocument(res *typist.Result) Document {
	doc := Document{
		Columns:  res.Columns,
		Rows:     res.Grid.Rows,
		TileSize: res.TileSize,
		Art:      res.Rows,
	}
	for _, d := range res.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, d.String())
	}
	return doc
}

// Write renders res to w in format.
func Write(w io.Writer, res *typist.Result, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, res)
	case FormatHTML:
		return writeHTML(w, res)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(res))
	case FormatYAML:
		data, err := yaml.Marshal(NewDocument(res))
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// WriteFile renders res to path. An empty path writes to stdout, except
// for html which defaults to DefaultHTMLFile.
func WriteFile(path string, res *typist.Result, format Format) error {
	if path == "" && format == FormatHTML {
		path = DefaultHTMLFile
	}
	if path == "" {
		return Write(os.Stdout, res, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, res, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeText(w io.Writer, res *typist.Result) error {
	for _, row := range res.Rows {
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(w io.Writer, res *typist.Result) error {
	var b strings.Builder
	b.WriteString(htmlHeader)
	b.WriteString(escapeHTML(res.String()))
	b.WriteString(htmlFooter)
	_, err := io.WriteString(w, b.String())
	return err
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes the characters that would break out of the <pre>
// block. Glyph catalogs routinely contain all three.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
