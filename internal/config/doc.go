// Package config loads hitsfinder settings from a .env file, environment
// variables and an optional YAML config file, then validates them.
//
// Precedence, highest first: explicit overrides (command-line flags),
// environment variables, the config file, built-in defaults. Environment
// variables use the HITSFINDER_ prefix with dots replaced by underscores
// (HITSFINDER_RETRY_MAX_ATTEMPTS). The bare API_URL, MODEL_NAME,
// OPENAI_API_KEY and GEMINI_API_KEY variables are honoured as well.
package config
