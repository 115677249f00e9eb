// hitsfinder asks a language model for the top artists of a year in a music
// genre, prints the result as a document and saves it.
//
// Usage:
//
//	hitsfinder --year 1975 [--genre "hard rock"] [--format markdown|html] [--output-dir ./out] [--no-save]
//
// Backend settings come from the environment or a .env file (API_URL,
// MODEL_NAME, OPENAI_API_KEY, GEMINI_API_KEY, HITSFINDER_*), or from the file
// given with --config.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
