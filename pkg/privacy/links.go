package privacy

import (
	"net/url"
	"regexp"
	"strings"
)

// Query parameter names (lowercased) that exist only to correlate a click
// with a recipient. Everything else in a URL is preserved untouched.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"gclid":        true,
	"fbclid":       true,
	"mc_eid":       true,
	"mc_cid":       true,
	"igshid":       true,
	"_hsenc":       true,
	"_hsmi":        true,
	"mkt_tok":      true,
}

var (
	hrefAttrRe = regexp.MustCompile(`(?i)\shref\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	querySepRe = regexp.MustCompile(`&amp;|&`)
)

// StripTrackingParams removes blocklisted query parameters from every href,
// quoted or not. Parameter ordering and all other parameters survive; an
// href whose query contains nothing blocklisted, or that fails to parse as
// a URL, is left byte-for-byte unchanged.
func StripTrackingParams(s string) string {
	return hrefAttrRe.ReplaceAllStringFunc(s, func(attr string) string {
		eq := strings.Index(attr, "=")
		value, quote := attr[eq+1:], ""
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') {
			quote = string(value[0])
			value = value[1 : len(value)-1]
		}

		cleaned := stripTrackedQuery(value)
		if cleaned == value {
			return attr
		}
		return attr[:eq+1] + quote + cleaned + quote
	})
}

func stripTrackedQuery(raw string) string {
	q := strings.Index(raw, "?")
	if q < 0 {
		return raw
	}
	// Attribute values often entity-encode the separator; decode only for
	// validation, never for the rewrite itself.
	if _, err := url.Parse(strings.ReplaceAll(raw, "&amp;", "&")); err != nil {
		return raw
	}

	query, frag := raw[q+1:], ""
	if h := strings.Index(query, "#"); h >= 0 {
		query, frag = query[:h], query[h:]
	}

	// Both separator spellings can appear in one value; keep each surviving
	// parameter attached to the separator spelled before it.
	seps := querySepRe.FindAllString(query, -1)
	parts := querySepRe.Split(query, -1)

	var b strings.Builder
	removed, kept := false, 0
	for i, p := range parts {
		name := p
		if j := strings.Index(p, "="); j >= 0 {
			name = p[:j]
		}
		if trackingParams[strings.ToLower(name)] {
			removed = true
			continue
		}
		if kept > 0 {
			b.WriteString(seps[i-1])
		}
		b.WriteString(p)
		kept++
	}

	if !removed {
		return raw
	}
	if kept == 0 {
		return raw[:q] + frag
	}
	return raw[:q] + "?" + b.String() + frag
}
