// Package openai implements the [ai.Provider] interface for OpenAI-compatible
// chat completion APIs (OpenAI, OpenRouter, Ollama's /v1 endpoint, vLLM)
// using the official openai-go SDK.
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment. The SDK's own retry loop is
// disabled: retries belong to the client middleware chain.
package openai
