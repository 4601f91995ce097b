package privacy

import (
	"regexp"
	"strconv"
	"strings"
)

// BlockedImagePlaceholder is the 1x1 transparent GIF that replaces the src
// of a blocked remote image. The original URL moves to data-blocked-src so
// the host can restore it if the user opts in.
const BlockedImagePlaceholder = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// Src substrings that mark an image as a tracking pixel when it declares no
// dimensions of its own.
var pixelSrcHints = []string{"pixel", "track", "beacon", "open", "1x1", "1px"}

var (
	imgTagRe = regexp.MustCompile(`(?i)<img\b[^>]*>`)

	// Attribute lookups require leading whitespace so data-* attributes
	// (notably data-blocked-src) never shadow the real one.
	widthValRe  = regexp.MustCompile(`(?i)\swidth\s*=\s*["']?(\d+)`)
	heightValRe = regexp.MustCompile(`(?i)\sheight\s*=\s*["']?(\d+)`)
	srcValRe    = regexp.MustCompile(`(?i)\ssrc\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+))`)

	loadingAttrRe = regexp.MustCompile(`(?i)\sloading\s*=`)

	srcAttrRe    = regexp.MustCompile(`(?i)\s+src\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	srcsetAttrRe = regexp.MustCompile(`(?i)\s+srcset\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	widthAttrRe  = regexp.MustCompile(`(?i)\s+width\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	heightAttrRe = regexp.MustCompile(`(?i)\s+height\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)

	// <source srcset="http..."> inside <picture> would bypass the src
	// rewrite, so the whole element goes.
	remoteSourceTagRe = regexp.MustCompile(`(?i)<source\b[^>]*\ssrcset\s*=\s*["']?https?://[^>]*>`)
	remoteSrcsetRe    = regexp.MustCompile(`(?i)\ssrcset\s*=\s*["']?[^"'>]*https?://`)

	styleAttrRe   = regexp.MustCompile(`(?i)\bstyle\s*=\s*(?:"[^"]*"|'[^']*')`)
	styleURLRe    = regexp.MustCompile(`(?i)url\(\s*["']?https?://[^)]*\)`)
	styleImportRe = regexp.MustCompile(`(?i)@import\s+url\(\s*["']?https?://[^)]*\)\s*;?`)
)

// StripTrackingPixels removes <img> elements that declare a width and height
// of at most 2 pixels, in either attribute order, and images without declared
// dimensions whose src carries a tracking hint. Always applied: a pixel has
// no legitimate display value.
func StripTrackingPixels(s string) string {
	return imgTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		w, wok := intAttr(tag, widthValRe)
		h, hok := intAttr(tag, heightValRe)
		if wok && hok {
			if w <= 2 && h <= 2 {
				return ""
			}
			return tag
		}
		if wok || hok {
			return tag
		}
		src, ok := imgSrc(tag)
		if !ok {
			return tag
		}
		src = strings.ToLower(src)
		for _, hint := range pixelSrcHints {
			if strings.Contains(src, hint) {
				return ""
			}
		}
		return tag
	})
}

// InjectLazyLoading adds loading="lazy" to every <img> that lacks the
// attribute. Purely a rendering-performance hint.
func InjectLazyLoading(s string) string {
	return imgTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		if loadingAttrRe.MatchString(tag) {
			return tag
		}
		// Tag is known to start with "<img" in some casing.
		return tag[:4] + ` loading="lazy"` + tag[4:]
	})
}

// BlockRemoteImages rewrites every http(s) image reference so the document
// cannot phone home: img src moves to data-blocked-src and is replaced by a
// transparent placeholder, srcset and declared dimensions are dropped,
// remote <source> elements are removed, and url(...)/@import references in
// inline CSS are neutralized. The stored raw body is never touched; the
// transform is re-run (or skipped) from the original on every settings
// change.
func BlockRemoteImages(s string) string {
	s = imgTagRe.ReplaceAllStringFunc(s, blockImgTag)
	s = remoteSourceTagRe.ReplaceAllString(s, "")
	s = styleAttrRe.ReplaceAllStringFunc(s, func(attr string) string {
		return styleURLRe.ReplaceAllString(attr, "none")
	})
	s = styleImportRe.ReplaceAllString(s, "")
	return s
}

func blockImgTag(tag string) string {
	src, ok := imgSrc(tag)
	if !ok || !isRemoteURL(src) {
		// A local src can still hide a remote srcset.
		if remoteSrcsetRe.MatchString(tag) {
			return srcsetAttrRe.ReplaceAllString(tag, "")
		}
		return tag
	}

	loc := srcAttrRe.FindStringIndex(tag)
	if loc == nil {
		return tag
	}
	// Splice rather than regex-replace: the original URL may contain
	// characters that are special in a replacement template.
	blocked := ` src="` + BlockedImagePlaceholder + `" data-blocked-src="` + src + `"`
	tag = tag[:loc[0]] + blocked + tag[loc[1]:]

	tag = srcsetAttrRe.ReplaceAllString(tag, "")
	// Declared dimensions would leave a large blank hole where the image
	// used to be.
	tag = widthAttrRe.ReplaceAllString(tag, "")
	tag = heightAttrRe.ReplaceAllString(tag, "")
	return tag
}

func imgSrc(tag string) (string, bool) {
	m := srcValRe.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	for _, v := range m[1:] {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

func isRemoteURL(u string) bool {
	u = strings.ToLower(strings.TrimSpace(u))
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func intAttr(tag string, re *regexp.Regexp) (int, bool) {
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
