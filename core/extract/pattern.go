package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultSongCap is the number of songs kept per artist by the pattern
// strategy. It mirrors a legacy limit rather than a business rule.
const DefaultSongCap = 5

var (
	// pairPattern matches `"key": [items]`, with the key double-quoted,
	// single-quoted or bare. Brackets inside quoted items do not end the list;
	// a quote that is never closed on its line counts as plain text.
	pairPattern = regexp.MustCompile(`(?:"([^"\n]+)"|'([^'\n]+)'|([^\s"'{}\[\],:][^"'{}\[\],:\n]*?))\s*:\s*\[((?:"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|[^\[\]])*)\]`)

	// itemPattern matches one list item: a double-quoted string, a
	// single-quoted string, or a bare run of text up to the next comma. A
	// bare item may contain apostrophes after its first character.
	itemPattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'|([^,"'\s][^,]*)`)

	unescaper = strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`)
)

// patternStrategy scans text for `"key": [items]` fragments.
type patternStrategy struct {
	songCap int
}

// Pattern returns the best-effort strategy that collects every
// `"key": [items]` fragment of the text, keeping at most songCap songs per
// artist (the first ones in order of appearance). A non-positive songCap
// means [DefaultSongCap]. Repeated keys keep the last fragment.
func Pattern(songCap int) Strategy {
	if songCap <= 0 {
		songCap = DefaultSongCap
	}
	return &patternStrategy{songCap: songCap}
}

func (s *patternStrategy) Name() string { return StrategyPattern }

func (s *patternStrategy) Extract(raw string) (*HitsResult, error) {
	hits := NewHitsResult()

	for _, match := range pairPattern.FindAllStringSubmatch(raw, -1) {
		name := trimItem(match[1] + match[2] + match[3])
		if isSongListKey(name) {
			continue
		}
		songs := splitItems(match[4])
		if len(songs) > s.songCap {
			songs = songs[:s.songCap]
		}
		hits.Set(ArtistEntry{Name: name, Songs: songs})
	}

	if hits.Len() == 0 {
		return nil, fmt.Errorf("%w: no key/list pairs", ErrNoMatch)
	}
	return hits, nil
}

// splitItems returns the non-empty items of a comma-separated list body.
func splitItems(body string) []string {
	var items []string
	for _, match := range itemPattern.FindAllStringSubmatch(body, -1) {
		item := match[1] + match[2] + match[3]
		if match[1] != "" || match[2] != "" {
			item = unescaper.Replace(item)
		}
		if item = trimItem(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// isSongListKey reports whether name is a field of a nested artist record
// ({"songs": [...]}) rather than an artist.
func isSongListKey(name string) bool {
	for _, key := range songListKeys {
		if strings.EqualFold(name, key) {
			return true
		}
	}
	return false
}

func trimItem(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"' `)
}
