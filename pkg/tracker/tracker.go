// Package tracker identifies email open-tracking in raw message bodies. It
// feeds a user-facing "N trackers blocked" affordance and nothing else:
// detection never blocks or alters rendering, and a missed tracker is an
// accepted false negative.
package tracker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joeblew999/plat-mailview/pkg/log"
)

// Report is the per-thread detection result: the deduplicated, sorted vendor
// display names and their count.
type Report struct {
	Vendors []string
	Count   int
}

// GenericPixelVendor names a structural match that no vendor domain claims.
const GenericPixelVendor = "Tracking pixel"

// Known email-marketing and analytics sender domains, matched as substrings
// of the lower-cased raw body.
var vendorDomains = map[string]string{
	"mailchimp.com":        "Mailchimp",
	"list-manage.com":      "Mailchimp",
	"mandrillapp.com":      "Mailchimp",
	"sendgrid.net":         "SendGrid",
	"sendgrid.com":         "SendGrid",
	"hubspot.com":          "HubSpot",
	"hubspotemail.net":     "HubSpot",
	"klaviyo.com":          "Klaviyo",
	"constantcontact.com":  "Constant Contact",
	"rs6.net":              "Constant Contact",
	"createsend.com":       "Campaign Monitor",
	"mailgun.org":          "Mailgun",
	"postmarkapp.com":      "Postmark",
	"sparkpostmail.com":    "SparkPost",
	"marketo.com":          "Marketo",
	"mktomail.com":         "Marketo",
	"exacttarget.com":      "Salesforce Marketing Cloud",
	"exct.net":             "Salesforce Marketing Cloud",
	"braze.com":            "Braze",
	"appboy.com":           "Braze",
	"iterable.com":         "Iterable",
	"customeriomail.com":   "Customer.io",
	"sailthru.com":         "Sailthru",
	"convertkit.com":       "ConvertKit",
	"aweber.com":           "AWeber",
	"getresponse.com":      "GetResponse",
	"activecampaign.com":   "ActiveCampaign",
	"activehosted.com":     "ActiveCampaign",
	"mailerlite.com":       "MailerLite",
	"omnisend.com":         "Omnisend",
	"brevo.com":            "Brevo",
	"sendinblue.com":       "Brevo",
	"intercom-mail.com":    "Intercom",
	"mailjet.com":          "Mailjet",
	"mailtrack.io":         "Mailtrack",
	"google-analytics.com": "Google Analytics",
	"doubleclick.net":      "Google Ads",
}

// Cheap keywords that make the structural scan worth running even after a
// vendor match.
var pixelHintWords = []string{"pixel", "track", "beacon", "open", "click"}

var (
	pixel1x1Re  = regexp.MustCompile(`<img[^>]*\swidth\s*=\s*["']?1\b[^>]*\sheight\s*=\s*["']?1\b|<img[^>]*\sheight\s*=\s*["']?1\b[^>]*\swidth\s*=\s*["']?1\b`)
	pixelHideRe = regexp.MustCompile(`<img[^>]*\sstyle\s*=\s*["'][^"']*display\s*:\s*none`)
)

// Detect scans raw (pre-sanitized) bodies and reports the union of tracking
// vendors across them. The structural 1x1/display:none scan only runs when
// no vendor domain matched, or when a cheap hint keyword suggests a pixel is
// present; that short-circuit bounds the cost on bodies unlikely to carry
// one.
func Detect(rawBodies []string) Report {
	vendors := make(map[string]struct{})

	for _, raw := range rawBodies {
		body := strings.ToLower(raw)

		matched := false
		for domain, vendor := range vendorDomains {
			if strings.Contains(body, domain) {
				vendors[vendor] = struct{}{}
				matched = true
			}
		}

		if !matched || hasPixelHint(body) {
			if pixel1x1Re.MatchString(body) || pixelHideRe.MatchString(body) {
				vendors[GenericPixelVendor] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(vendors))
	for v := range vendors {
		names = append(names, v)
	}
	sort.Strings(names)

	if len(names) > 0 {
		trackersDetected.Add(float64(len(names)))
		log.Debug("trackers detected", "vendors", names, "bodies", len(rawBodies))
	}

	return Report{Vendors: names, Count: len(names)}
}

func hasPixelHint(body string) bool {
	for _, w := range pixelHintWords {
		if strings.Contains(body, w) {
			return true
		}
	}
	return false
}
