package main

import (
	"fmt"

	"github.com/leofalp/hitsfinder/internal/config"
	"github.com/leofalp/hitsfinder/providers/ai"
	"github.com/leofalp/hitsfinder/providers/ai/gemini"
	"github.com/leofalp/hitsfinder/providers/ai/ollama"
	"github.com/leofalp/hitsfinder/providers/ai/openai"
)

// newProvider builds the model backend named in cfg.Provider.
func newProvider(cfg *config.Config) (ai.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOllama, "":
		p := ollama.New()
		if cfg.APIURL != "" {
			p.WithBaseURL(cfg.APIURL)
		}
		if cfg.Model != "" {
			p.WithModel(cfg.Model)
		}
		return p, nil

	case config.ProviderOpenAI:
		p := openai.New().WithAPIKey(cfg.OpenAIAPIKey)
		if cfg.APIURL != "" {
			p.WithBaseURL(cfg.APIURL)
		}
		if cfg.Model != "" {
			p.WithModel(cfg.Model)
		}
		return p, nil

	case config.ProviderGemini:
		p := gemini.New().WithAPIKey(cfg.GeminiAPIKey)
		if cfg.APIURL != "" {
			p.WithBaseURL(cfg.APIURL)
		}
		if cfg.Model != "" {
			p.WithModel(cfg.Model)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
