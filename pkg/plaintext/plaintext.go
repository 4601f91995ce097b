// Package plaintext derives a plain-text form from sanitized email HTML for
// previews, summarization and printing. Unlike the pattern-based transforms,
// text extraction wants a real tokenizer: entity decoding and tag boundaries
// come for free and malformed markup cannot confuse a state machine that
// only ever reads forward.
package plaintext

import (
	"strings"

	"golang.org/x/net/html"
)

// Content of these elements never contributes readable text.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"title":    true,
	"noscript": true,
}

// Elements that end a visual line.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "table": true, "ul": true, "ol": true, "hr": true,
}

// Extract strips tags, decodes entities and collapses whitespace. Block
// elements become line breaks so lists and paragraphs stay readable.
func Extract(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			return collapse(b.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tt == html.StartTagToken && skippedTags[tag] {
				skipDepth++
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedTags[tag] && skipDepth > 0 {
				skipDepth--
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// collapse squeezes runs of spaces within lines and runs of blank lines
// between them.
func collapse(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
