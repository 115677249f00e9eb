package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Extractor runs an ordered list of strategies against raw model text. It
// holds no mutable state and is safe for concurrent use.
type Extractor struct {
	strategies    []Strategy
	excerptLength int
}

type options struct {
	wrapperKeys   []string
	songCap       int
	excerptLength int
	strategies    []Strategy
}

// Option configures an Extractor.
type Option func(*options)

// WithWrapperKeys adds top-level field names under which the artist mapping
// may be nested. They are looked up before [DefaultWrapperKeys].
func WithWrapperKeys(keys ...string) Option {
	return func(o *options) {
		for _, key := range keys {
			if key = strings.TrimSpace(key); key != "" {
				o.wrapperKeys = append(o.wrapperKeys, key)
			}
		}
	}
}

// WithSongCap sets how many songs per artist the pattern strategy keeps.
func WithSongCap(songCap int) Option {
	return func(o *options) {
		o.songCap = songCap
	}
}

// WithExcerptLength sets how many runes of raw text a Failure keeps.
func WithExcerptLength(runes int) Option {
	return func(o *options) {
		o.excerptLength = runes
	}
}

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *options) {
		o.strategies = strategies
	}
}

// New builds an Extractor. Without [WithStrategies] the chain is
// Strict → Fenced → Pattern.
func New(opts ...Option) *Extractor {
	o := &options{
		songCap:       DefaultSongCap,
		excerptLength: DefaultExcerptLength,
	}
	for _, opt := range opts {
		opt(o)
	}

	wrapperKeys := append(o.wrapperKeys, DefaultWrapperKeys...)

	strategies := o.strategies
	if len(strategies) == 0 {
		strategies = []Strategy{
			Strict(wrapperKeys...),
			Fenced(wrapperKeys...),
			Pattern(o.songCap),
		}
	}

	if o.excerptLength <= 0 {
		o.excerptLength = DefaultExcerptLength
	}

	return &Extractor{
		strategies:    strategies,
		excerptLength: o.excerptLength,
	}
}

// StrategyNames returns the names of the strategies in the order they run.
func (e *Extractor) StrategyNames() []string {
	names := make([]string, len(e.strategies))
	for i, strategy := range e.strategies {
		names[i] = strategy.Name()
	}
	return names
}

// ExcerptLength returns how many runes of raw text a Failure keeps.
func (e *Extractor) ExcerptLength() int {
	return e.excerptLength
}

// Extract runs the strategy chain against raw and returns the first
// non-empty result. Blank input fails immediately with [ReasonEmpty]; a
// strategy reporting [ErrEmpty] ends the chain with [ReasonEmpty]; when every
// strategy finds nothing the outcome is [ReasonUnparseable].
func (e *Extractor) Extract(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return Failed(ReasonEmpty, raw, e.excerptLength)
	}

	for _, strategy := range e.strategies {
		hits, err := runStrategy(strategy, raw)
		if err == nil && hits.Len() > 0 {
			return Succeeded(hits, strategy.Name())
		}
		if errors.Is(err, ErrEmpty) {
			return Failed(ReasonEmpty, raw, e.excerptLength)
		}
	}

	return Failed(ReasonUnparseable, raw, e.excerptLength)
}

// runStrategy calls strategy.Extract and turns a panic into ErrNoMatch.
func runStrategy(strategy Strategy, raw string) (hits *HitsResult, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			hits = nil
			err = fmt.Errorf("%w: strategy %s panicked: %v", ErrNoMatch, strategy.Name(), recovered)
		}
	}()

	return strategy.Extract(raw)
}

var defaultExtractor = New()

// Extract runs the default strategy chain against raw.
func Extract(raw string) Outcome {
	return defaultExtractor.Extract(raw)
}
