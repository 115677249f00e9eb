package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string][]string
		wantErr bool
	}{
		{
			name:  "strict JSON is returned as-is",
			input: `{"Queen": ["Bohemian Rhapsody"]}`,
			want:  map[string][]string{"Queen": {"Bohemian Rhapsody"}},
		},
		{
			name:  "python dict with single quotes",
			input: `{'Queen': ['Bohemian Rhapsody', 'We Will Rock You']}`,
			want:  map[string][]string{"Queen": {"Bohemian Rhapsody", "We Will Rock You"}},
		},
		{
			name:  "unquoted keys",
			input: `{Queen: ["Bohemian Rhapsody"]}`,
			want:  map[string][]string{"Queen": {"Bohemian Rhapsody"}},
		},
		{
			name:    "blank input",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeLiteral(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeLiteral() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !gjson.Valid(got) {
				t.Fatalf("decodeLiteral() returned invalid JSON: %q", got)
			}
			hits := hitsFromMapping(gjson.Parse(got))
			if diff := cmp.Diff(tt.want, hits.Songs()); diff != "" {
				t.Errorf("decoded mapping mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSON5(t *testing.T) {
	got, err := decodeJSON5(`{
		// comment
		Rush: ['Tom Sawyer', 'Limelight',],
		'ABBA': ["Waterloo"],
	}`)
	if err != nil {
		t.Fatalf("decodeJSON5() error: %v", err)
	}

	hits := hitsFromMapping(gjson.Parse(got))
	want := map[string][]string{
		"Rush": {"Tom Sawyer", "Limelight"},
		"ABBA": {"Waterloo"},
	}
	if diff := cmp.Diff(want, hits.Songs()); diff != "" {
		t.Errorf("decoded mapping mismatch (-want +got):\n%s", diff)
	}

	// Re-encoding through a Go map sorts the keys.
	if diff := cmp.Diff([]string{"ABBA", "Rush"}, hits.Names()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON5_Invalid(t *testing.T) {
	if _, err := decodeJSON5(`{"unterminated": [`); err == nil {
		t.Error("expected error for truncated literal")
	}
}

func TestLiteralFromBlock(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{
			name:  "assignment",
			block: "hits = {'a': ['b']}\nprint(hits)\n",
			want:  "{'a': ['b']}",
		},
		{
			name:  "annotated assignment",
			block: "hits: dict[str, list[str]] = {\n 'a': ['b'],\n}",
			want:  "{\n 'a': ['b'],\n}",
		},
		{
			name:  "no assignment",
			block: `{"a": ["b"]}`,
			want:  `{"a": ["b"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := literalFromBlock(tt.block); got != tt.want {
				t.Errorf("literalFromBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFencedBlocks(t *testing.T) {
	text := "intro\n```json\n{\"a\": [\"b\"]}\n```\nmiddle\n```\n\n```\n~~~python\nx = 1\n~~~"

	want := []string{"{\"a\": [\"b\"]}\n", "x = 1\n"}
	if diff := cmp.Diff(want, fencedBlocks(text)); diff != "" {
		t.Errorf("fencedBlocks() mismatch (-want +got):\n%s", diff)
	}
}
