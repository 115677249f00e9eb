package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/hitsfinder/providers/ai"
)

// HeaderOption is an extra request header sent by [DoPostSync].
type HeaderOption struct {
	Key   string
	Value string
}

// DoPostSync performs a synchronous HTTP POST request with JSON body and parses the response.
//
// Error Handling Strategy:
//   - Request construction and body marshaling errors are returned as-is (they are programming errors)
//   - Failures before a response is received are returned as *ai.TransportError via ai.NewNetworkError
//   - Non-2xx status codes are returned as *ai.TransportError via ai.NewStatusError
//   - JSON parsing errors include a response preview for debugging
//
// The function always closes the response body via defer, logging any close errors
// without overriding the primary error returned by the function.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	slog.DebugContext(ctx, "http request prepared",
		slog.String("method", http.MethodPost),
		slog.String("url", url),
		slog.Int("body_size", len(jsonBody)),
	)

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		slog.DebugContext(ctx, "http request failed",
			slog.String("url", url),
			slog.Duration("duration", requestDuration),
			slog.String("error", err.Error()),
		)
		return nil, nil, ai.NewNetworkError("", fmt.Errorf("error sending request: %w", err))
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, ai.NewNetworkError("", fmt.Errorf("error reading response body: %w", err))
	}

	slog.DebugContext(ctx, "http response received",
		slog.String("url", url),
		slog.Int("status_code", res.StatusCode),
		slog.Int("body_size", len(respBody)),
		slog.Duration("duration", requestDuration),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, ai.NewStatusError("", res.StatusCode, TruncateString(string(respBody), DefaultMaxStringLength))
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, TruncateString(string(respBody), DefaultMaxStringLength))
	}

	return res, &resStruct, nil
}

// CloseWithLog closes c and logs, rather than returns, any error. It is meant
// for deferred cleanup where a close failure must not mask the primary error.
func CloseWithLog(c io.Closer) {
	if closeErr := c.Close(); closeErr != nil {
		slog.Warn("failed to close response body", "error", closeErr.Error())
	}
}
