// Package render orchestrates the safe-rendering pipeline for email threads:
// sanitize, apply privacy transforms, derive plain text and build the styled
// display document, all off the caller's thread, with a per-thread cache and
// a scheduler that renders the selected message before the rest.
package render

import "github.com/joeblew999/plat-mailview/pkg/privacy"

// Message is one raw email body in a thread. RawBody is attacker-controlled
// HTML and is never mutated; every transform produces a new string. Preview
// is cheap, already-available text used to seed a placeholder before the
// real render lands.
type Message struct {
	ID      string
	RawBody string
	Preview string
}

// Body holds the three artifacts a render produces: the defanged HTML form
// (caching, printing, fallback), the plain-text form (previews,
// summarization) and the complete styled document handed to the display
// surface. Treated as immutable once created, and only ever valid for the
// Settings snapshot it was rendered with.
type Body struct {
	SanitizedHTML  string
	PlainText      string
	StyledDocument string
}

// Settings is the privacy snapshot governing one render.
type Settings = privacy.Settings
