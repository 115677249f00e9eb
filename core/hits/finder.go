package hits

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/hitsfinder/core/client"
	"github.com/leofalp/hitsfinder/core/client/middleware"
	"github.com/leofalp/hitsfinder/core/extract"
	"github.com/leofalp/hitsfinder/core/retry"
	"github.com/leofalp/hitsfinder/providers/ai"
)

// DefaultGenre is used when FetchHits is called with an empty genre.
const DefaultGenre = "classic rock"

// ErrFatalTransport marks a transport failure that retrying cannot fix, such
// as rejected credentials or a malformed request.
var ErrFatalTransport = errors.New("hits: fatal transport error")

// Config holds the settings applied by [Option] functions.
type Config struct {
	Model          string
	SystemPrompt   string
	Temperature    float32
	JSONMode       bool
	PromptTemplate string
	ArtistCount    int
	SongCount      int
	Retry          middleware.RetryConfig
	AttemptTimeout time.Duration
	Logger         *slog.Logger
	LogLevel       middleware.LogLevel
	ExtractOptions []extract.Option
}

// Option configures a Finder.
type Option func(*Config)

// WithModel sets the model name sent with every request.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithSystemPrompt sets the system prompt sent with every request. Empty
// sends none.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) { c.SystemPrompt = prompt }
}

// WithTemperature sets the sampling temperature. Zero keeps the backend default.
func WithTemperature(temperature float32) Option {
	return func(c *Config) { c.Temperature = temperature }
}

// WithJSONMode toggles the backend's JSON output mode. It is on by default.
func WithJSONMode(enabled bool) Option {
	return func(c *Config) { c.JSONMode = enabled }
}

// WithPromptTemplate replaces the built-in prompt. The text is a text/template
// executed with [PromptData].
func WithPromptTemplate(text string) Option {
	return func(c *Config) { c.PromptTemplate = text }
}

// WithCounts sets how many artists and songs per artist the prompt asks for.
func WithCounts(artists, songs int) Option {
	return func(c *Config) {
		c.ArtistCount = artists
		c.SongCount = songs
	}
}

// WithRetry sets the retry policy applied to transport failures.
func WithRetry(config middleware.RetryConfig) Option {
	return func(c *Config) { c.Retry = config }
}

// WithAttemptTimeout bounds every single attempt. Zero disables the bound;
// the caller's context still applies.
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.AttemptTimeout = timeout }
}

// WithLogger sets the logger used for query and request records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithLogLevel sets the verbosity of the per-request logging middleware.
func WithLogLevel(level middleware.LogLevel) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithExtractOptions passes options to the response extractor.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(c *Config) { c.ExtractOptions = append(c.ExtractOptions, opts...) }
}

// Finder runs hit queries against one model backend. It holds only immutable
// configuration and is safe for concurrent use.
type Finder struct {
	client   *client.Client
	prompt   *template.Template
	config   Config
	logger   *slog.Logger
	attempts int
}

// New builds a Finder for provider. The client chain is, outermost first:
// retry, per-attempt timeout, request logging.
func New(provider ai.Provider, opts ...Option) (*Finder, error) {
	config := Config{
		JSONMode:    true,
		ArtistCount: 10,
		SongCount:   extract.DefaultSongCap,
		LogLevel:    middleware.LogLevelStandard,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Retry.Logger == nil {
		config.Retry.Logger = config.Logger
	}

	tmpl, err := parsePromptTemplate(config.PromptTemplate)
	if err != nil {
		return nil, err
	}

	c, err := client.New(provider,
		client.WithDefaultModel(config.Model),
		client.WithSystemPrompt(config.SystemPrompt),
		client.WithMiddleware(
			middleware.NewRetryMiddleware(config.Retry),
			middleware.NewTimeoutMiddleware(config.AttemptTimeout),
			middleware.NewLoggingMiddleware(config.Logger, config.LogLevel),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("hits: building client: %w", err)
	}

	attempts := config.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	return &Finder{
		client:   c,
		prompt:   tmpl,
		config:   config,
		logger:   config.Logger,
		attempts: attempts,
	}, nil
}

// Prompt returns the prompt FetchHits sends for year and genre.
func (f *Finder) Prompt(year int, genre string) (string, error) {
	genre = normalizeGenre(genre)
	return renderPrompt(f.prompt, PromptData{
		Year:        year,
		Genre:       genre,
		WrapperKey:  WrapperKey(genre),
		ArtistCount: f.config.ArtistCount,
		SongCount:   f.config.SongCount,
	})
}

// FetchHits asks the model for the hits of year in genre (DefaultGenre when
// empty) and extracts them from the answer.
//
// Parse failures and exhausted retries are reported through the returned
// Outcome with a nil error. A fatal transport error is returned wrapping
// [ErrFatalTransport]; a canceled or expired ctx is returned wrapping ctx.Err().
func (f *Finder) FetchHits(ctx context.Context, year int, genre string) (extract.Outcome, error) {
	genre = normalizeGenre(genre)
	logger := f.logger.With(
		slog.String("query_id", uuid.NewString()),
		slog.String("provider", f.client.ProviderName()),
		slog.Int("year", year),
		slog.String("genre", genre),
	)

	prompt, err := f.Prompt(year, genre)
	if err != nil {
		return extract.Outcome{}, fmt.Errorf("hits: year %d, genre %q: %w", year, genre, err)
	}

	logger.InfoContext(ctx, "fetching hits", slog.Int("max_attempts", f.attempts))

	start := time.Now()
	response, err := f.client.Generate(ctx, ai.GenerateRequest{
		Prompt:      prompt,
		Temperature: f.config.Temperature,
		JSONMode:    f.config.JSONMode,
	})

	raw := ""
	switch {
	case err == nil:
		raw = response.Text

	case errors.Is(err, ai.ErrEmptyResponse):
		// An empty answer is a parse outcome, not a transport failure.

	case ctx.Err() != nil:
		return extract.Outcome{}, fmt.Errorf("hits: year %d, genre %q: %w", year, genre, ctx.Err())

	case errors.Is(err, retry.ErrExhausted):
		outcome := extract.TransportFailed(err, f.extractor(genre).ExcerptLength()).WithContext(year, genre)
		logger.WarnContext(ctx, "hits query gave up",
			slog.String("reason", string(extract.ReasonTransport)),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return outcome, nil

	default:
		logger.ErrorContext(ctx, "hits query failed", slog.String("error", err.Error()))
		return extract.Outcome{}, fmt.Errorf("%w: year %d, genre %q: %w", ErrFatalTransport, year, genre, err)
	}

	outcome := f.extractor(genre).Extract(raw).WithContext(year, genre)

	if outcome.OK() {
		logger.InfoContext(ctx, "hits extracted",
			slog.String("strategy", outcome.Strategy),
			slog.Int("artists", outcome.Hits.Len()),
			slog.Duration("duration", time.Since(start)),
		)
	} else {
		logger.WarnContext(ctx, "hits extraction failed",
			slog.String("reason", string(outcome.Failure.Reason)),
			slog.String("excerpt", outcome.Failure.Excerpt),
		)
	}

	return outcome, nil
}

func (f *Finder) extractor(genre string) *extract.Extractor {
	opts := make([]extract.Option, 0, len(f.config.ExtractOptions)+1)
	opts = append(opts, extract.WithWrapperKeys(WrapperKey(genre)))
	opts = append(opts, f.config.ExtractOptions...)
	return extract.New(opts...)
}

func normalizeGenre(genre string) string {
	genre = strings.Join(strings.Fields(genre), " ")
	if genre == "" {
		return DefaultGenre
	}
	return genre
}
