// Package extract turns the raw text answer of a language model into a
// validated artist → songs mapping.
//
// Model output is not guaranteed to be well formed: it may be a clean JSON
// document, a JSON or Python-style literal inside a markdown code fence, or
// prose with a few list-looking fragments. [Extractor] runs an ordered list
// of [Strategy] values against the text and returns the first non-empty
// result:
//
//  1. [StrategyStrict]: the whole text is a strict JSON document.
//  2. [StrategyFenced]: a literal inside a fenced code block, decoded as JSON,
//     repaired JSON (jsonrepair) or JSON5.
//  3. [StrategyPattern]: a best-effort regular-expression scan for
//     "key": [items] fragments, capped to the first few songs per artist.
//
// Extraction is pure and deterministic: no I/O, no shared state, and no
// panic ever escapes [Extractor.Extract]. Every failure is reported as an
// [Outcome] carrying a [*Failure] with a bounded excerpt of the input.
package extract
