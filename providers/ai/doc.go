// Package ai defines the shared, provider-agnostic contract used by every
// model backend (Ollama, OpenAI-compatible endpoints, Gemini). A single prompt
// goes in as a [GenerateRequest] and a single block of text comes back as a
// [GenerateResponse].
//
// Backends report failures as [*TransportError], which records whether the
// failure is worth retrying. [IsTransient] is the default classifier used by
// the retry middleware to separate retry-worthy failures (network errors,
// timeouts, HTTP 408/425/429/5xx) from fail-fast ones (authentication,
// malformed requests).
package ai
