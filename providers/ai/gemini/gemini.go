package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/genai"

	"github.com/leofalp/hitsfinder/providers/ai"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.0-flash-lite" // Most cost-effective model
)

// GeminiProvider implements the ai.Provider interface for Google's Gemini API.
type GeminiProvider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
}

// New creates a new Gemini provider instance with default values from environment.
// Environment variables:
//   - GEMINI_API_KEY: API key for authentication
//   - GEMINI_API_BASE_URL: Base URL for API (optional, the SDK default is used when empty)
func New() *GeminiProvider {
	return &GeminiProvider{
		apiKey:       os.Getenv("GEMINI_API_KEY"),
		baseURL:      os.Getenv("GEMINI_API_BASE_URL"),
		defaultModel: defaultModel,
		client:       &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (p *GeminiProvider) WithAPIKey(apiKey string) *GeminiProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GeminiProvider) WithBaseURL(baseURL string) *GeminiProvider {
	p.baseURL = baseURL
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *GeminiProvider) WithModel(model string) *GeminiProvider {
	p.defaultModel = model
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GeminiProvider) WithHttpClient(httpClient *http.Client) *GeminiProvider {
	p.client = httpClient
	return p
}

// Name implements ai.Provider.
func (p *GeminiProvider) Name() string { return providerName }

// Generate implements ai.Provider.
func (p *GeminiProvider) Generate(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: GEMINI_API_KEY is not set", providerName)
	}

	model := request.Model
	if model == "" {
		model = p.defaultModel
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      p.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  p.client,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: creating client: %w", providerName, err)
	}

	resp, err := sdk.Models.GenerateContent(ctx, model, genai.Text(request.Prompt), requestConfig(request))
	if err != nil {
		return nil, toTransportError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%s: %w", providerName, ai.ErrEmptyResponse)
	}

	return responseToGeneric(model, resp, text), nil
}

func requestConfig(request ai.GenerateRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if request.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemPrompt, genai.RoleUser)
	}

	if request.Temperature > 0 {
		config.Temperature = genai.Ptr(request.Temperature)
	}

	if request.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	return config
}

func responseToGeneric(model string, resp *genai.GenerateContentResponse, text string) *ai.GenerateResponse {
	result := &ai.GenerateResponse{
		Model: model,
		Text:  text,
	}

	if resp.ModelVersion != "" {
		result.Model = resp.ModelVersion
	}

	if len(resp.Candidates) > 0 {
		result.FinishReason = string(resp.Candidates[0].FinishReason)
	}

	if usage := resp.UsageMetadata; usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return result
}

// toTransportError maps SDK failures onto the shared transport error so the
// retry middleware can classify them.
func toTransportError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		transportErr := ai.NewStatusError(providerName, apiErr.Code, apiErr.Message)
		transportErr.Err = err
		return transportErr
	}

	return ai.NewClientError(providerName, err)
}
