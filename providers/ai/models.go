package ai

/*
	##### PROVIDER INPUT #####
*/

// GenerateRequest is a single prompt sent to a model backend.
type GenerateRequest struct {
	Model        string  `json:"model,omitempty"`         // Model name or identifier; providers fall back to their default when empty
	Prompt       string  `json:"prompt"`                  // User prompt
	SystemPrompt string  `json:"system_prompt,omitempty"` // Optional system prompt
	Temperature  float32 `json:"temperature,omitempty"`   // Sampling temperature; zero leaves the backend default
	JSONMode     bool    `json:"json_mode,omitempty"`     // Ask the backend to constrain output to JSON when it supports it
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// GenerateResponse is the raw text answer of a model backend.
type GenerateResponse struct {
	Model        string `json:"model"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}
