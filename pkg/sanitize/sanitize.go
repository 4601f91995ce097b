// Package sanitize removes script-capable constructs from untrusted email
// HTML. It is deliberately pattern-based rather than a full DOM parse: email
// HTML is rendered behind a Content-Security-Policy that never grants
// script-src, so the sanitizer is one defensive layer, not the only one.
//
// Sanitize is a total function: malformed input degrades to imperfectly
// cleaned output instead of failing, and running it twice yields the same
// result as running it once.
package sanitize

import "regexp"

var (
	// Paired <script> blocks go first so attribute scanning never has to
	// look inside script bodies. Stray open/close tags are swept after.
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)

	// Inline event handlers: onclick="...", onload='...', onerror=bare.
	eventAttrRe = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)

	// javascript: URIs are rewritten to an inert scheme instead of removed,
	// so anchors keep their text and layout.
	jsURIRe = regexp.MustCompile(`(?i)(=\s*["']?\s*)javascript\s*:`)

	iframeBlockRe = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`)
	iframeTagRe   = regexp.MustCompile(`(?i)</?iframe\b[^>]*>`)

	// <meta http-equiv=refresh> and <base> both hand navigation control to
	// the message author.
	metaRefreshRe = regexp.MustCompile(`(?is)<meta\b[^>]*http-equiv\s*=\s*["']?refresh["']?[^>]*>`)
	baseTagRe     = regexp.MustCompile(`(?i)<base\b[^>]*>`)

	objectBlockRe = regexp.MustCompile(`(?is)<object\b[^>]*>.*?</object\s*>`)
	objectTagRe   = regexp.MustCompile(`(?i)</?object\b[^>]*>`)
	embedTagRe    = regexp.MustCompile(`(?i)<embed\b[^>]*>`)

	formOpenRe  = regexp.MustCompile(`(?i)<form\b[^>]*>`)
	formCloseRe = regexp.MustCompile(`(?i)</form\s*>`)
)

// FormClass marks a <form> that was neutralized into a <div>. The document
// builder ships a style for it so survey-like layouts stay recognizable.
const FormClass = "form-neutralized"

// Sanitize strips dangerous constructs from raw email HTML. It never fails
// and is idempotent. Unmatched or malformed markup passes through unchanged
// rather than being destroyed.
func Sanitize(raw string) string {
	s := raw

	s = scriptBlockRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = jsURIRe.ReplaceAllString(s, "${1}blocked:")
	s = iframeBlockRe.ReplaceAllString(s, "")
	s = iframeTagRe.ReplaceAllString(s, "")
	s = metaRefreshRe.ReplaceAllString(s, "")
	s = baseTagRe.ReplaceAllString(s, "")
	s = objectBlockRe.ReplaceAllString(s, "")
	s = objectTagRe.ReplaceAllString(s, "")
	s = embedTagRe.ReplaceAllString(s, "")
	s = formOpenRe.ReplaceAllString(s, `<div class="`+FormClass+`">`)
	s = formCloseRe.ReplaceAllString(s, "</div>")

	return s
}
