package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/leofalp/hitsfinder/internal/utils"
	"github.com/leofalp/hitsfinder/providers/ai"
)

const (
	providerName   = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// OpenAIProvider implements the ai.Provider interface for OpenAI-compatible APIs.
type OpenAIProvider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
}

// New creates a new OpenAI provider instance with default values from environment.
// Environment variables:
//   - OPENAI_API_KEY: API key for authentication
//   - OPENAI_API_BASE_URL: Base URL for API (optional, defaults to OpenAI's API)
func New() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIProvider{
		apiKey:       os.Getenv("OPENAI_API_KEY"),
		baseURL:      baseURL,
		defaultModel: defaultModel,
		client:       &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (p *OpenAIProvider) WithAPIKey(apiKey string) *OpenAIProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *OpenAIProvider) WithBaseURL(baseURL string) *OpenAIProvider {
	p.baseURL = baseURL
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *OpenAIProvider) WithModel(model string) *OpenAIProvider {
	p.defaultModel = model
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) *OpenAIProvider {
	p.client = httpClient
	return p
}

// Name implements ai.Provider.
func (p *OpenAIProvider) Name() string { return providerName }

// Generate implements ai.Provider using the chat completions endpoint.
func (p *OpenAIProvider) Generate(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s: OPENAI_API_KEY is not set", providerName)
	}

	model := request.Model
	if model == "" {
		model = p.defaultModel
	}

	sdk := openai.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.client),
		option.WithMaxRetries(0),
	)

	completion, err := sdk.Chat.Completions.New(ctx, requestToOpenAI(model, request))
	if err != nil {
		return nil, toTransportError(err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%s: %w", providerName, ai.ErrEmptyResponse)
	}

	choice := completion.Choices[0]
	responseModel := completion.Model
	if responseModel == "" {
		responseModel = model
	}

	return &ai.GenerateResponse{
		Model:        responseModel,
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &ai.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

func requestToOpenAI(model string, request ai.GenerateRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(request.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	}

	if request.Temperature > 0 {
		params.Temperature = openai.Float(float64(request.Temperature))
	}

	if request.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return params
}

// toTransportError maps SDK failures onto the shared transport error so the
// retry middleware can classify them.
func toTransportError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = utils.TruncateString(apiErr.RawJSON(), utils.DefaultMaxStringLength)
		}
		transportErr := ai.NewStatusError(providerName, apiErr.StatusCode, message)
		transportErr.Err = err
		return transportErr
	}

	return ai.NewClientError(providerName, err)
}
