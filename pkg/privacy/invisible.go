package privacy

import (
	"regexp"
	"strings"
)

// Zero-width characters are used to defeat spam filters and to disguise
// spoofed domains. They carry no visual information, so removal is always
// safe. Both the literal code points and their HTML entity spellings
// (decimal, hex and named) are stripped.
var (
	invisibleRunes = strings.NewReplacer(
		"\u200B", "", // zero-width space
		"\u200C", "", // zero-width non-joiner
		"\u200D", "", // zero-width joiner
		"\uFEFF", "", // byte-order mark
	)

	invisibleEntityRe = regexp.MustCompile(`(?i)&#0*(?:8203|8204|8205|65279);|&#x0*(?:200b|200c|200d|feff);|&(?:ZeroWidthSpace|zwsp|zwnj|zwj);`)
)

// StripInvisibleChars removes zero-width characters and the byte-order mark
// in both literal and entity form. Not gated by Settings: this is cosmetic
// anti-spoofing cleanup, not a privacy tradeoff.
func StripInvisibleChars(s string) string {
	s = invisibleRunes.Replace(s)
	return invisibleEntityRe.ReplaceAllString(s, "")
}
