// Package htmldoc wraps a sanitized, privacy-transformed email body into one
// self-contained HTML document: fixed viewport, embedded stylesheet and a
// Content-Security-Policy reflecting the active settings.
//
// The CSP is the pipeline's structural backstop. script-src is never
// granted, so even markup that slipped past the pattern-based sanitizer
// cannot execute inside a conforming rendering surface.
package htmldoc

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/joeblew999/plat-mailview/pkg/privacy"
)

// Build produces the complete display document for a fully transformed body.
// The body is embedded verbatim; all escaping decisions were made by the
// sanitizer and transform stages upstream.
func Build(body string, settings privacy.Settings) string {
	doc := h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no")),
				h.Meta(g.Attr("http-equiv", "Content-Security-Policy"), h.Content(Policy(settings))),
				h.StyleEl(h.Type("text/css"), g.Raw(stylesheet(settings))),
			),
			h.Body(g.Raw(body)),
		),
	)

	var b strings.Builder
	// Render on a strings.Builder cannot fail.
	_ = doc.Render(&b)
	return b.String()
}

// Policy derives the Content-Security-Policy for the given settings.
// default-src 'none' disallows everything, then inline styles are allowed
// and images/fonts are opened up to data: URIs, plus https: origins only
// when remote images are permitted. script-src is never granted.
func Policy(settings privacy.Settings) string {
	imgSrc := "data: https:"
	if settings.BlockRemoteImages {
		imgSrc = "data:"
	}
	return "default-src 'none'; style-src 'unsafe-inline'; img-src " + imgSrc + "; font-src " + imgSrc
}

func stylesheet(settings privacy.Settings) string {
	if settings.BlockTrackingPixels {
		return baseCSS + pixelHidingCSS
	}
	return baseCSS
}

const baseCSS = `
* { box-sizing: border-box; }
html, body {
  margin: 0;
  padding: 8px;
  width: 100%;
  max-width: 100%;
  overflow-x: hidden;
  word-wrap: break-word;
  font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
  font-size: 15px;
  line-height: 1.5;
}
img, video, iframe, canvas {
  max-width: 100% !important;
  height: auto !important;
}
table { max-width: 100%; border-collapse: collapse; }
td, th { word-break: break-word; }
a { color: #0b57d0; }
blockquote {
  margin: 8px 0;
  padding: 4px 12px;
  border-left: 3px solid #c4c7c5;
  color: #444746;
}
pre, code {
  background: #f1f3f4;
  border-radius: 4px;
  padding: 2px 4px;
  overflow-x: auto;
  font-size: 13px;
}
.form-neutralized {
  border: 1px dashed #c4c7c5;
  border-radius: 4px;
  padding: 8px;
}
img[data-blocked-src] {
  width: 0 !important;
  height: 0 !important;
}
@media (prefers-color-scheme: dark) {
  a { color: #a8c7fa; }
  blockquote { border-left-color: #5f6368; color: #bdc1c6; }
  pre, code { background: #2d2e31; }
  .form-neutralized { border-color: #5f6368; }
}
`

// Second line of defense behind the pixel stripper: anything still shaped
// like a tracking pixel renders at zero size.
const pixelHidingCSS = `
img[width="0"], img[height="0"],
img[width="1"], img[height="1"],
img[style*="display:none"], img[style*="display: none"] {
  display: none !important;
}
`
