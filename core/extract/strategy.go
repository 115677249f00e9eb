package extract

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Names of the built-in strategies, reported in [Outcome.Strategy].
const (
	StrategyStrict  = "strict"
	StrategyFenced  = "fenced"
	StrategyPattern = "pattern"
)

// ErrNoMatch is returned by a strategy that found nothing it could use; the
// extractor moves on to the next strategy.
var ErrNoMatch = errors.New("extract: strategy found no match")

// Strategy is one self-contained way of turning raw model text into hits.
//
// Extract returns a non-empty result on success. It returns an error wrapping
// [ErrNoMatch] when the next strategy should be tried, and [ErrEmpty] when the
// text was understood but holds no artists, which ends the chain.
type Strategy interface {
	Name() string
	Extract(raw string) (*HitsResult, error)
}

// strictStrategy parses the whole text as one strict JSON object.
type strictStrategy struct {
	wrapperKeys []string
}

// Strict returns the strategy that treats the whole text as a JSON document.
// The artist mapping is read from the first of wrapperKeys present at the top
// level, or from the document itself.
func Strict(wrapperKeys ...string) Strategy {
	return &strictStrategy{wrapperKeys: wrapperKeys}
}

func (s *strictStrategy) Name() string { return StrategyStrict }

func (s *strictStrategy) Extract(raw string) (*HitsResult, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: not a JSON document", ErrNoMatch)
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: JSON document is not an object", ErrNoMatch)
	}

	hits := hitsFromDocument(doc, s.wrapperKeys)
	if hits.Len() == 0 {
		return nil, ErrEmpty
	}
	return hits, nil
}
