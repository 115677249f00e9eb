// Package ollama implements the [ai.Provider] interface for a local Ollama
// server's /api/generate endpoint.
//
// The main entry point is [New], which reads API_URL and MODEL_NAME from the
// environment. The request is sent with streaming disabled and the answer is
// read from the "response" field of the reply.
package ollama
