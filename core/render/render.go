package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/leofalp/hitsfinder/core/extract"
	"github.com/leofalp/hitsfinder/internal/utils"
)

// Format is an output document format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned by [ParseFormat] for unsupported names.
var ErrUnknownFormat = errors.New("render: unknown format")

// ParseFormat accepts "markdown" (or "md"), "html" and "json".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension for documents of format f.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	}
	return ".md"
}

var markdownConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Title returns the document heading, e.g. "Classic Rock Hits from 1975".
func Title(year int, genre string) string {
	return fmt.Sprintf("%s Hits from %d", utils.TitleCase(genre), year)
}

// Markdown renders hits in insertion order: one second-level heading per
// artist, the career phase in italics when known, then one bullet per song.
func Markdown(year int, genre string, hits *extract.HitsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(year, genre))

	for _, artist := range hits.Artists() {
		fmt.Fprintf(&b, "## %s\n\n", artist.Name)
		if artist.CareerPhase != "" {
			fmt.Fprintf(&b, "_%s_\n\n", artist.CareerPhase)
		}
		for _, song := range artist.Songs {
			fmt.Fprintf(&b, "- %s\n", song)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the Markdown document as a standalone HTML page. Raw HTML
// in artist or song names is not passed through.
func HTML(year int, genre string, hits *extract.HitsResult) (string, error) {
	var body bytes.Buffer
	if err := markdownConverter.Convert([]byte(Markdown(year, genre, hits)), &body); err != nil {
		return "", fmt.Errorf("render: converting markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(Title(year, genre)))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// JSON renders hits as an indented object with the query and the artists in
// insertion order.
func JSON(year int, genre string, hits *extract.HitsResult) (string, error) {
	document := struct {
		Title   string              `json:"title"`
		Year    int                 `json:"year"`
		Genre   string              `json:"genre"`
		Artists *extract.HitsResult `json:"artists"`
	}{Title(year, genre), year, genre, hits}

	if hits == nil {
		document.Artists = extract.NewHitsResult()
	}

	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: encoding json: %w", err)
	}
	return string(encoded) + "\n", nil
}

// Render produces the document for format.
func Render(format Format, year int, genre string, hits *extract.HitsResult) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(year, genre, hits), nil
	case FormatHTML:
		return HTML(year, genre, hits)
	case FormatJSON:
		return JSON(year, genre, hits)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
