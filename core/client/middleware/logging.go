package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/hitsfinder/core/client"
	"github.com/leofalp/hitsfinder/internal/utils"
	"github.com/leofalp/hitsfinder/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token counts.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the prompt length and
	// finish reason. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the prompt and the
	// response text, each truncated to 500 characters.
	//
	// WARNING: raw model output ends up in the logs. Intended for local
	// debugging of extraction failures.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// ParseLogLevel maps "minimal", "standard" and "verbose" to a LogLevel.
// Unknown values fall back to LogLevelStandard.
func ParseLogLevel(value string) LogLevel {
	switch value {
	case "minimal":
		return LogLevelMinimal
	case "verbose":
		return LogLevelVerbose
	default:
		return LogLevelStandard
	}
}

// NewLoggingMiddleware creates a MiddlewareConfig that emits structured slog
// log entries before and after every provider call.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.MiddlewareConfig {
	return client.MiddlewareConfig{Send: buildSendLogging(logger, level)}
}

// buildSendLogging constructs the send middleware that logs request/response pairs.
func buildSendLogging(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.GenerateRequest) (*ai.GenerateResponse, error) {
			logger.InfoContext(ctx, "llm send",
				buildRequestAttrs(request, level)...,
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm send failed",
					slog.String("model", request.Model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "llm send completed",
				buildResponseAttrs(response, elapsed, level)...,
			)

			return response, nil
		}
	}
}

// buildRequestAttrs returns slog attributes for an outgoing request,
// expanding detail according to the requested verbosity level.
func buildRequestAttrs(request ai.GenerateRequest, level LogLevel) []any {
	attrs := []any{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.Int("prompt_length", len(request.Prompt)),
			slog.Bool("json_mode", request.JSONMode),
		)
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", utils.TruncateString(request.Prompt, truncateLen)))
	}

	return attrs
}

// buildResponseAttrs returns slog attributes for a completed response,
// expanding detail according to the requested verbosity level.
func buildResponseAttrs(response *ai.GenerateResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
			slog.Int("total_tokens", response.Usage.TotalTokens),
		)
	}

	if level >= LogLevelStandard && response.FinishReason != "" {
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}

	if level >= LogLevelVerbose && response.Text != "" {
		attrs = append(attrs,
			slog.String("response_text", utils.TruncateString(response.Text, truncateLen)),
		)
	}

	return attrs
}
