package config

import "time"

// Backend names accepted in Config.Provider.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
type Config struct {
	Provider     string  `mapstructure:"provider" validate:"required,oneof=ollama openai gemini"`
	Model        string  `mapstructure:"model"`
	APIURL       string  `mapstructure:"api_url" validate:"omitempty,url"`
	OpenAIAPIKey string  `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	JSONMode     bool    `mapstructure:"json_mode"`

	Query  QueryConfig  `mapstructure:"query"`
	Retry  RetryConfig  `mapstructure:"retry"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// QueryConfig shapes the question sent to the model.
type QueryConfig struct {
	Genre          string        `mapstructure:"genre"`
	ArtistCount    int           `mapstructure:"artist_count" validate:"gte=1,lte=100"`
	SongCount      int           `mapstructure:"song_count" validate:"gte=1,lte=50"`

	// SongCap bounds the songs kept per artist when the answer is only
	// salvageable by scanning for key/list fragments. It is independent of
	// SongCount, which is what the prompt asks for.
	SongCap int `mapstructure:"song_cap" validate:"gte=1,lte=50"`

	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gte=0"`

	// PromptTemplate is the path of a text/template file replacing the
	// built-in prompt. Empty keeps the built-in one.
	PromptTemplate string `mapstructure:"prompt_template" validate:"omitempty,file"`
}

// RetryConfig mirrors the backoff policy applied to transport failures.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"gte=1"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" validate:"gte=0"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff" validate:"gtefield=InitialBackoff"`
	BackoffFactor  float64       `mapstructure:"backoff_factor" validate:"gte=1"`
	JitterFraction float64       `mapstructure:"jitter_fraction" validate:"gte=0,lte=1"`
}

// OutputConfig controls rendering and persistence of the hits document.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=markdown md html json"`
	Dir    string `mapstructure:"dir" validate:"required"`
	Save   bool   `mapstructure:"save"`
}

// LogConfig selects the process logger and the request logging detail.
type LogConfig struct {
	Level    string `mapstructure:"level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format   string `mapstructure:"format" validate:"oneof=text json"`
	Requests string `mapstructure:"requests" validate:"oneof=minimal standard verbose"`
}
