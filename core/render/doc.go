// Package render folds an extracted hits result into a document: Markdown
// (the canonical form), standalone HTML converted from it with goldmark, or
// JSON for other programs.
package render
