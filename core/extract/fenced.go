package extract

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/tidwall/gjson"
)

var (
	// fencePattern matches ``` and ~~~ blocks with an optional language tag.
	fencePattern = regexp.MustCompile("(?s)```[\\w+.#-]*[ \\t]*\\r?\\n?(.*?)```|~~~[\\w+.#-]*[ \\t]*\\r?\\n?(.*?)~~~")

	// assignmentPattern finds the start of `name = {` style literals.
	assignmentPattern = regexp.MustCompile(`=\s*\{`)

	htmlCodePattern = regexp.MustCompile(`(?i)<(pre|code)[\s>]`)
)

// fencedStrategy decodes a literal found inside a fenced code block.
type fencedStrategy struct {
	wrapperKeys []string
}

// Fenced returns the strategy that looks for fenced code blocks and decodes
// the literal they hold. Inside a block the literal is the brace-delimited
// value of an assignment (`hits = {...}`) when there is one, otherwise the
// whole block. Blocks are tried in order; the first one that decodes to a
// non-empty mapping wins.
//
// Text without markdown fences but with HTML <pre>/<code> blocks is converted
// to markdown first.
func Fenced(wrapperKeys ...string) Strategy {
	return &fencedStrategy{wrapperKeys: wrapperKeys}
}

func (s *fencedStrategy) Name() string { return StrategyFenced }

func (s *fencedStrategy) Extract(raw string) (*HitsResult, error) {
	blocks := fencedBlocks(raw)
	if len(blocks) == 0 && htmlCodePattern.MatchString(raw) {
		if markdown, err := htmltomarkdown.ConvertString(raw); err == nil {
			blocks = fencedBlocks(markdown)
		}
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no fenced block", ErrNoMatch)
	}

	var lastErr error
	for _, block := range blocks {
		canonical, err := decodeLiteral(literalFromBlock(block))
		if err != nil {
			lastErr = err
			continue
		}

		doc := gjson.Parse(canonical)
		if !doc.IsObject() {
			lastErr = fmt.Errorf("fenced literal is not a mapping")
			continue
		}

		if hits := hitsFromDocument(doc, s.wrapperKeys); hits.Len() > 0 {
			return hits, nil
		}
		lastErr = fmt.Errorf("fenced literal holds no artists")
	}

	return nil, fmt.Errorf("%w: %v", ErrNoMatch, lastErr)
}

// fencedBlocks returns the non-blank contents of every fenced block in order.
func fencedBlocks(text string) []string {
	var blocks []string
	for _, match := range fencePattern.FindAllStringSubmatch(text, -1) {
		content := match[1]
		if content == "" {
			content = match[2]
		}
		if strings.TrimSpace(content) != "" {
			blocks = append(blocks, content)
		}
	}
	return blocks
}

// literalFromBlock returns the `= {...}` literal of an assignment, spanning to
// the last closing brace of the block, or the whole block when there is no
// assignment.
func literalFromBlock(block string) string {
	location := assignmentPattern.FindStringIndex(block)
	if location == nil {
		return block
	}

	start := location[1] - 1
	end := strings.LastIndex(block, "}")
	if end < start {
		return block[start:]
	}
	return block[start : end+1]
}
