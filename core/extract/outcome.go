package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/hitsfinder/internal/utils"
)

// Reason classifies a failed query.
type Reason string

const (
	// ReasonUnparseable means no strategy could find a mapping in the text.
	ReasonUnparseable Reason = "unparseable"

	// ReasonEmpty means the text was empty, or parsed into a mapping with no
	// usable artist.
	ReasonEmpty Reason = "empty"

	// ReasonTransport means the model backend could not be reached before the
	// retry budget ran out.
	ReasonTransport Reason = "transport"
)

// DefaultExcerptLength is the number of runes of raw text kept on a Failure.
const DefaultExcerptLength = 200

// Sentinel errors matched by [*Failure] through errors.Is.
var (
	ErrUnparseable = errors.New("extract: response could not be parsed")
	ErrEmpty       = errors.New("extract: response contains no artists")
	ErrTransport   = errors.New("extract: model backend unreachable")
)

// Failure describes why a query produced no hits. Excerpt is a bounded prefix
// of the raw response (or of the transport error message), never the full
// payload. Year and Genre are filled in by the orchestrator.
type Failure struct {
	Reason  Reason
	Excerpt string
	Year    int
	Genre   string
	Err     error
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(string(f.Reason))

	if f.Genre != "" || f.Year != 0 {
		fmt.Fprintf(&b, " (year %d, genre %q)", f.Year, f.Genre)
	}

	if f.Excerpt != "" {
		fmt.Fprintf(&b, ": %s", f.Excerpt)
	}
	return b.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is lets errors.Is match a Failure against ErrUnparseable, ErrEmpty and
// ErrTransport.
func (f *Failure) Is(target error) bool {
	switch f.Reason {
	case ReasonUnparseable:
		return target == ErrUnparseable
	case ReasonEmpty:
		return target == ErrEmpty
	case ReasonTransport:
		return target == ErrTransport
	}
	return false
}

// Outcome is the result of one extraction or query: either Hits together with
// the name of the strategy that produced them, or a Failure.
type Outcome struct {
	Hits     *HitsResult
	Strategy string
	Failure  *Failure
}

// OK reports whether the outcome carries at least one artist.
func (o Outcome) OK() bool {
	return o.Failure == nil && o.Hits.Len() > 0
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

// WithContext returns a copy of o whose failure, if any, carries the query's
// year and genre.
func (o Outcome) WithContext(year int, genre string) Outcome {
	if o.Failure == nil {
		return o
	}

	failure := *o.Failure
	failure.Year = year
	failure.Genre = genre
	o.Failure = &failure
	return o
}

// Succeeded builds a successful outcome.
func Succeeded(hits *HitsResult, strategy string) Outcome {
	return Outcome{Hits: hits, Strategy: strategy}
}

// Failed builds a failed outcome whose excerpt is the first excerptLength
// runes of raw.
func Failed(reason Reason, raw string, excerptLength int) Outcome {
	return Outcome{Failure: &Failure{
		Reason:  reason,
		Excerpt: utils.Excerpt(raw, excerptLength),
	}}
}

// TransportFailed builds the outcome reported when the model backend stayed
// unreachable. The excerpt is taken from the error message.
func TransportFailed(err error, excerptLength int) Outcome {
	message := ""
	if err != nil {
		message = err.Error()
	}
	if excerptLength <= 0 {
		excerptLength = DefaultExcerptLength
	}

	return Outcome{Failure: &Failure{
		Reason:  ReasonTransport,
		Excerpt: utils.Excerpt(message, excerptLength),
		Err:     err,
	}}
}
