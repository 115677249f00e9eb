// Package hits asks a language model for the notable artists and songs of a
// year and genre, and turns the answer into an [extract.Outcome].
//
// A [Finder] owns an immutable client whose middleware chain retries
// transient transport failures with exponential backoff. Once the retry
// budget is spent the query ends in a "transport" failure outcome; fatal
// transport errors (authentication, malformed requests) and context
// cancellation are returned as Go errors instead. Parsing is never retried.
package hits
