package browser

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

// BaseDomain returns the base domain for an inputted URL.
func BaseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}

// firstAttr returns the first non-empty value of attr across the selection.
func firstAttr(sel *goquery.Selection, attr string) string {
	var val string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			val = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return val
}

// mergeCookies de-duplicates cookies by name, domain and path; later sets win.
func mergeCookies(sets ...[]*http.Cookie) []*http.Cookie {
	seen := make(map[string]int)
	var out []*http.Cookie
	for _, set := range sets {
		for _, c := range set {
			if c == nil {
				continue
			}
			key := c.Name + "|" + c.Domain + "|" + c.Path
			if i, ok := seen[key]; ok {
				out[i] = c
				continue
			}
			seen[key] = len(out)
			out = append(out, c)
		}
	}
	return out
}
