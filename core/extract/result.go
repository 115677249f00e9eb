package extract

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ArtistEntry is one artist and the songs the model listed for them, in the
// order the model returned them. CareerPhase is optional free text.
type ArtistEntry struct {
	Name        string   `json:"name"`
	Songs       []string `json:"songs"`
	CareerPhase string   `json:"career_phase,omitempty"`
}

// HitsResult maps artist names to their entries. Keys keep the order in which
// they were first seen; setting an existing key replaces its entry in place.
// Entries without a name or without songs are never stored.
type HitsResult struct {
	entries []ArtistEntry
	index   map[string]int
}

// NewHitsResult builds a result from entries, applying the same rules as
// [HitsResult.Set].
func NewHitsResult(entries ...ArtistEntry) *HitsResult {
	result := &HitsResult{index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		result.Set(entry)
	}
	return result
}

// Set stores entry under its trimmed name, dropping empty song titles. It
// reports whether the entry was kept.
func (r *HitsResult) Set(entry ArtistEntry) bool {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return false
	}

	songs := make([]string, 0, len(entry.Songs))
	for _, song := range entry.Songs {
		if song = strings.TrimSpace(song); song != "" {
			songs = append(songs, song)
		}
	}
	if len(songs) == 0 {
		return false
	}

	normalized := ArtistEntry{
		Name:        name,
		Songs:       songs,
		CareerPhase: strings.TrimSpace(entry.CareerPhase),
	}

	if r.index == nil {
		r.index = make(map[string]int)
	}
	if position, exists := r.index[name]; exists {
		r.entries[position] = normalized
		return true
	}

	r.index[name] = len(r.entries)
	r.entries = append(r.entries, normalized)
	return true
}

// Get returns the entry stored for name.
func (r *HitsResult) Get(name string) (ArtistEntry, bool) {
	if r == nil {
		return ArtistEntry{}, false
	}
	position, ok := r.index[name]
	if !ok {
		return ArtistEntry{}, false
	}
	return r.entries[position], true
}

// Len returns the number of artists.
func (r *HitsResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Artists returns a copy of the entries in insertion order.
func (r *HitsResult) Artists() []ArtistEntry {
	if r == nil {
		return nil
	}
	artists := make([]ArtistEntry, len(r.entries))
	for i, entry := range r.entries {
		entry.Songs = append([]string(nil), entry.Songs...)
		artists[i] = entry
	}
	return artists
}

// Names returns the artist names in insertion order.
func (r *HitsResult) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.entries))
	for i, entry := range r.entries {
		names[i] = entry.Name
	}
	return names
}

// Songs returns a plain artist → songs view of the result.
func (r *HitsResult) Songs() map[string][]string {
	songs := make(map[string][]string, r.Len())
	for _, entry := range r.Artists() {
		songs[entry.Name] = entry.Songs
	}
	return songs
}

// MarshalJSON encodes the result as an object keyed by artist name, keeping
// insertion order.
func (r *HitsResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, entry := range r.Artists() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(struct {
			Songs       []string `json:"songs"`
			CareerPhase string   `json:"career_phase,omitempty"`
		}{entry.Songs, entry.CareerPhase})
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
