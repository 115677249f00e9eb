// Package utils provides shared low-level helpers used by the model
// providers and the middleware: a synchronous JSON-over-HTTP round trip that
// reports failures as [ai.TransportError], string truncation helpers for
// bounded log and error output, and the genre casing helpers.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [TruncateString] for log output, [Excerpt] for rune-safe diagnostic
// prefixes, [Slug] for keys and file names, [TitleCase] for headings.
package utils
