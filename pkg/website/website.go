// Package website extracts and classifies business website URLs.
package website

import (
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// blockedDomains are social networks and directories whose pages must never
// be trusted as a business's own website.
var blockedDomains = []string{
	"facebook.com", "fb.com", "instagram.com", "twitter.com", "x.com",
	"linkedin.com", "youtube.com", "tiktok.com", "pinterest.com",
	"yelp.com", "yellowpages.com", "bbb.org", "angi.com", "angieslist.com",
	"homeadvisor.com", "thumbtack.com", "houzz.com", "nextdoor.com",
	"mapquest.com", "manta.com", "foursquare.com", "tripadvisor.com",
	"google.com", "business.site", "g.page", "linktr.ee",
}

// hostedDomains are site builders and listing hosts: a page exists but the
// business does not own the domain.
var hostedDomains = []string{
	"wixsite.com", "wordpress.com", "blogspot.com", "weebly.com",
	"squarespace.com", "godaddysites.com", "business.site", "square.site",
	"webflow.io", "carrd.co", "site123.me", "jimdosite.com", "mystrikingly.com",
}

// Host returns the lowercased hostname of raw with any "www." prefix
// removed. Bare domains without a scheme are accepted.
func Host(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	u, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(u.Hostname(), ".")
	return strings.TrimPrefix(host, "www.")
}

// RegistrableDomain returns the ICANN registrable domain of raw
// ("shop.abcroofing.co.uk" -> "abcroofing.co.uk"), or the host itself
// when it cannot be derived.
func RegistrableDomain(raw string) string {
	host := Host(raw)
	if host == "" || !strings.Contains(host, ".") {
		return host
	}
	domain, err := publicsuffix.DomainFromListWithOptions(publicsuffix.DefaultList, host, &publicsuffix.FindOptions{IgnorePrivate: true})
	if err != nil || domain == "" {
		return host
	}
	return domain
}

func hostIn(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// IsBlocked reports whether raw points at a social or directory site.
func IsBlocked(raw string) bool {
	host := Host(raw)
	return host != "" && hostIn(host, blockedDomains)
}

// Filter returns raw unless it is empty, unparseable, or blocked.
func Filter(raw string) string {
	raw = strings.TrimSpace(raw)
	if Host(raw) == "" || IsBlocked(raw) {
		return ""
	}
	return raw
}

// Kind classifies a website for scoring.
type Kind int

const (
	// KindAbsent covers no site and sites on a subdomain of someone else's
	// registrable domain.
	KindAbsent Kind = iota
	// KindHosted is a site-builder or directory-hosted page.
	KindHosted
	// KindCustom is a business-owned registrable domain.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindHosted:
		return "hosted"
	default:
		return "absent"
	}
}

// Classify returns the Kind of raw.
func Classify(raw string) Kind {
	host := Host(raw)
	if host == "" || !strings.Contains(host, ".") {
		return KindAbsent
	}
	if hostIn(host, hostedDomains) || hostIn(host, blockedDomains) {
		return KindHosted
	}
	if RegistrableDomain(host) != host {
		return KindAbsent
	}
	return KindCustom
}

// SameDomain compares two URLs by host, case-insensitively and ignoring "www.".
func SameDomain(a, b string) bool {
	ha, hb := Host(a), Host(b)
	return ha != "" && ha == hb
}

// DerivedName turns a domain into search words:
// "https://abc-roofing-tx.com" -> "abc roofing tx".
func DerivedName(raw string) string {
	domain := RegistrableDomain(raw)
	if domain == "" {
		return ""
	}
	label := domain
	if i := strings.Index(domain, "."); i > 0 {
		label = domain[:i]
	}
	words := strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	return strings.Join(words, " ")
}
