package extract

import (
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultWrapperKeys are the top-level fields under which a model usually
// nests the artist mapping.
var DefaultWrapperKeys = []string{"classic_rock_artists", "artists"}

var (
	songListKeys    = []string{"songs", "hits", "top_hits", "tracks"}
	careerPhaseKeys = []string{"career_phase", "careerPhase", "active_years", "era"}
	artistNameKeys  = []string{"name", "artist"}
	songTitleKeys   = []string{"title", "song", "name"}
)

// hitsFromDocument reads an artist mapping out of a parsed JSON object. The
// mapping is the value of the first wrapper key present in doc, or doc
// itself when no wrapper key is present.
func hitsFromDocument(doc gjson.Result, wrapperKeys []string) *HitsResult {
	return hitsFromMapping(locateMapping(doc, wrapperKeys))
}

// locateMapping looks for a wrapper key (case-insensitively) whose value is an
// object or an array.
func locateMapping(doc gjson.Result, wrapperKeys []string) gjson.Result {
	for _, wrapper := range wrapperKeys {
		var found gjson.Result
		doc.ForEach(func(key, value gjson.Result) bool {
			if strings.EqualFold(key.String(), wrapper) && (value.IsObject() || value.IsArray()) {
				found = value
				return false
			}
			return true
		})
		if found.Exists() {
			return found
		}
	}
	return doc
}

// hitsFromMapping accepts either an object keyed by artist name or an array
// of artist records ({"name": ..., "songs": [...]}). Duplicate names keep the
// last value seen.
func hitsFromMapping(mapping gjson.Result) *HitsResult {
	hits := NewHitsResult()

	switch {
	case mapping.IsObject():
		mapping.ForEach(func(key, value gjson.Result) bool {
			if entry, ok := entryFromValue(key.String(), value); ok {
				hits.Set(entry)
			}
			return true
		})

	case mapping.IsArray():
		mapping.ForEach(func(_, record gjson.Result) bool {
			if !record.IsObject() {
				return true
			}
			name := firstString(record, artistNameKeys)
			if entry, ok := entryFromValue(name, record); ok {
				hits.Set(entry)
			}
			return true
		})
	}

	return hits
}

// entryFromValue normalizes the two supported value shapes: a bare song list,
// or a record holding a song list and an optional career phase.
func entryFromValue(name string, value gjson.Result) (ArtistEntry, bool) {
	entry := ArtistEntry{Name: name}

	switch {
	case value.IsArray():
		entry.Songs = songsFromList(value)

	case value.IsObject():
		for _, key := range songListKeys {
			if list := value.Get(key); list.IsArray() {
				entry.Songs = songsFromList(list)
				break
			}
		}
		entry.CareerPhase = firstString(value, careerPhaseKeys)

	default:
		return ArtistEntry{}, false
	}

	return entry, strings.TrimSpace(entry.Name) != "" && len(entry.Songs) > 0
}

// songsFromList keeps string items and the title of {"title": ...} records,
// in order. Other item types are skipped.
func songsFromList(list gjson.Result) []string {
	var songs []string
	list.ForEach(func(_, item gjson.Result) bool {
		var title string
		switch {
		case item.Type == gjson.String:
			title = item.String()
		case item.IsObject():
			title = firstString(item, songTitleKeys)
		}

		if title = strings.TrimSpace(title); title != "" {
			songs = append(songs, title)
		}
		return true
	})
	return songs
}

func firstString(record gjson.Result, keys []string) string {
	for _, key := range keys {
		if value := record.Get(key); value.Type == gjson.String {
			return value.String()
		}
	}
	return ""
}
