package hits

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/leofalp/hitsfinder/internal/utils"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// PromptData is the value a prompt template is executed with.
type PromptData struct {
	Year        int
	Genre       string
	WrapperKey  string
	ArtistCount int
	SongCount   int
}

// WrapperKey returns the top-level field the model is asked to nest its
// answer under: "classic rock" gives "classic_rock_artists".
func WrapperKey(genre string) string {
	slug := utils.Slug(genre)
	if slug == "" {
		return "artists"
	}
	return slug + "_artists"
}

func parsePromptTemplate(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultPromptTemplate
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, data PromptData) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
