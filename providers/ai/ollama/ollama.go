package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/hitsfinder/internal/utils"
	"github.com/leofalp/hitsfinder/providers/ai"
)

const (
	providerName   = "ollama"
	defaultBaseURL = "http://localhost:11434/api/generate"
	defaultModel   = "llama3"
)

// OllamaProvider implements the ai.Provider interface for Ollama.
type OllamaProvider struct {
	url          string
	defaultModel string
	client       *http.Client
}

// New creates a new Ollama provider instance with default values from environment.
// Environment variables:
//   - API_URL: full URL of the generate endpoint (optional, defaults to a local server)
//   - MODEL_NAME: model used when a request does not name one (optional)
func New() *OllamaProvider {
	url := os.Getenv("API_URL")
	if url == "" {
		url = defaultBaseURL
	}

	model := os.Getenv("MODEL_NAME")
	if model == "" {
		model = defaultModel
	}

	return &OllamaProvider{
		url:          url,
		defaultModel: model,
		client:       &http.Client{},
	}
}

// WithBaseURL sets the generate endpoint URL.
func (p *OllamaProvider) WithBaseURL(url string) *OllamaProvider {
	p.url = url
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *OllamaProvider) WithModel(model string) *OllamaProvider {
	p.defaultModel = model
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *OllamaProvider) WithHttpClient(httpClient *http.Client) *OllamaProvider {
	p.client = httpClient
	return p
}

// Name implements ai.Provider.
func (p *OllamaProvider) Name() string { return providerName }

// Generate implements ai.Provider.
func (p *OllamaProvider) Generate(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
	model := request.Model
	if model == "" {
		model = p.defaultModel
	}

	_, resp, err := utils.DoPostSync[generateResponse](ctx, p.client, p.url, "", requestToOllama(model, request))
	if err != nil {
		return nil, withProvider(err)
	}

	if resp.Response == "" {
		return nil, fmt.Errorf("%s: %w", providerName, ai.ErrEmptyResponse)
	}

	return responseToGeneric(model, *resp), nil
}

func requestToOllama(model string, request ai.GenerateRequest) generateRequest {
	body := generateRequest{
		Model:  model,
		Prompt: request.Prompt,
		System: request.SystemPrompt,
		Stream: false,
	}

	if request.JSONMode {
		body.Format = "json"
	}

	if request.Temperature > 0 {
		body.Options = &requestOptions{Temperature: request.Temperature}
	}

	return body
}

func responseToGeneric(model string, resp generateResponse) *ai.GenerateResponse {
	if resp.Model != "" {
		model = resp.Model
	}

	result := &ai.GenerateResponse{
		Model:        model,
		Text:         resp.Response,
		FinishReason: resp.DoneReason,
	}

	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	}

	return result
}

// withProvider stamps the provider name on transport errors raised by the
// shared HTTP helper.
func withProvider(err error) error {
	var transportErr *ai.TransportError
	if errors.As(err, &transportErr) && transportErr.Provider == "" {
		transportErr.Provider = providerName
	}
	return err
}
