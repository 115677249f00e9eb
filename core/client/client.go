package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/hitsfinder/providers/ai"
)

// ErrNilProvider is returned by [New] when no provider is supplied.
var ErrNilProvider = errors.New("client: provider must not be nil")

// ClientOptions contains the configuration applied by [Option] functions.
type ClientOptions struct {
	// DefaultModel is used when a request leaves Model empty.
	DefaultModel string

	// SystemPrompt is used when a request leaves SystemPrompt empty.
	SystemPrompt string

	// Middlewares are applied outermost-first around every provider call.
	Middlewares []MiddlewareConfig
}

// Option configures a Client.
type Option func(*ClientOptions)

// WithDefaultModel sets the model used for requests that do not name one.
func WithDefaultModel(model string) Option {
	return func(o *ClientOptions) {
		o.DefaultModel = model
	}
}

// WithSystemPrompt sets the system prompt used for requests that carry none.
func WithSystemPrompt(prompt string) Option {
	return func(o *ClientOptions) {
		o.SystemPrompt = prompt
	}
}

// WithMiddleware appends middlewares to the chain. Repeated calls accumulate;
// the first middleware registered overall is the outermost wrapper.
func WithMiddleware(middlewares ...MiddlewareConfig) Option {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// Client is an immutable wrapper around a provider and its middleware chain.
// It is safe for concurrent use when the underlying provider is.
type Client struct {
	provider ai.Provider
	send     SendFunc
	options  ClientOptions
}

// New builds a Client for provider. It fails when provider is nil or when a
// middleware entry has no Send function.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	options := ClientOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	for i, middleware := range options.Middlewares {
		if middleware.Send == nil {
			return nil, fmt.Errorf("client: middleware[%d] has a nil Send field", i)
		}
	}

	return &Client{
		provider: provider,
		send:     buildSendChain(provider, options.Middlewares),
		options:  options,
	}, nil
}

// ProviderName returns the name of the underlying provider.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// DefaultModel returns the model applied to requests that do not name one.
func (c *Client) DefaultModel() string {
	return c.options.DefaultModel
}

// Generate fills in request defaults and sends the request through the
// middleware chain.
func (c *Client) Generate(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
	if strings.TrimSpace(request.Prompt) == "" {
		return nil, errors.New("client: prompt must not be empty")
	}

	if request.Model == "" {
		request.Model = c.options.DefaultModel
	}
	if request.SystemPrompt == "" {
		request.SystemPrompt = c.options.SystemPrompt
	}

	return c.send(ctx, request)
}
