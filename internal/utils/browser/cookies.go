package browser

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"tubetag/internal/utils/logging"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all"
	"github.com/browserutils/kooky/browser/chrome"
	"github.com/browserutils/kooky/browser/firefox"
	"github.com/browserutils/kooky/browser/safari"
)

// AllBrowsers reads cookies from every browser kooky can find.
const AllBrowsers = "all"

// CookieManager loads browser cookies for catalog and cover art requests.
type CookieManager struct {
	source string // browser name, AllBrowsers, or "" for none
	file   string // explicit cookie store path

	mu    sync.Mutex
	cache map[string][]*http.Cookie
}

// NewCookieManager returns a manager reading from the named browser source and/or a cookie file.
func NewCookieManager(source, file string) *CookieManager {
	return &CookieManager{
		source: strings.ToLower(strings.TrimSpace(source)),
		file:   strings.TrimSpace(file),
		cache:  make(map[string][]*http.Cookie),
	}
}

// Enabled reports whether any cookie source is configured.
func (cm *CookieManager) Enabled() bool {
	return cm != nil && (cm.source != "" || cm.file != "")
}

// GetCookies retrieves cookies valid for rawURL's base domain.
func (cm *CookieManager) GetCookies(rawURL string) ([]*http.Cookie, error) {
	if !cm.Enabled() {
		return nil, nil
	}

	baseDomain, err := BaseDomain(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract base domain: %w", err)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cached, ok := cm.cache[baseDomain]; ok {
		return cached, nil
	}

	var fileCookies, storeCookies []*http.Cookie
	if cm.file != "" {
		logging.D(2, "Reading cookies from specified file: %s", cm.file)
		kc, err := readCookieFile(cm.file, baseDomain)
		if err != nil {
			return nil, fmt.Errorf("failed to read cookies from file: %w", err)
		}
		fileCookies = convertToHTTPCookies(kc)
	}

	if cm.source != "" {
		storeCookies = cm.readBrowserStores(baseDomain)
	}

	cookies := mergeCookies(fileCookies, storeCookies)
	if len(cookies) == 0 {
		logging.I("No cookies found for %q, proceeding without cookies", baseDomain)
	} else {
		logging.I("Found a total of %d cookies for %q", len(cookies), baseDomain)
	}
	cm.cache[baseDomain] = cookies
	return cookies, nil
}

// readBrowserStores reads matching cookies from every store belonging to the configured browser.
func (cm *CookieManager) readBrowserStores(baseDomain string) []*http.Cookie {
	var (
		out       []*http.Cookie
		attempted []string
	)

	for _, store := range kooky.FindAllCookieStores() {
		browserName := store.Browser()
		if cm.source != AllBrowsers && !strings.EqualFold(browserName, cm.source) {
			continue
		}
		attempted = append(attempted, browserName)

		cookies, err := store.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(baseDomain))
		if err != nil {
			logging.D(2, "Failed to read cookies from %s: %v", browserName, err)
			continue
		}
		if len(cookies) > 0 {
			logging.I("Successfully read %d cookies from %s for domain %s", len(cookies), browserName, baseDomain)
			out = append(out, convertToHTTPCookies(cookies)...)
		}
	}

	logging.D(1, "Attempted to read cookies from the following browsers: %v", attempted)
	return out
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(kookyCookies))
	for _, c := range kookyCookies {
		if c == nil {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Path:   c.Path,
			Domain: c.Domain,
			Secure: c.Secure,
		})
	}
	return httpCookies
}

// readCookieFile reads cookies from the specified browser cookie store file.
func readCookieFile(cookieFilePath, baseDomain string) ([]*kooky.Cookie, error) {
	var (
		store kooky.CookieStore
		err   error
	)

	lower := strings.ToLower(cookieFilePath)
	switch {
	case strings.Contains(lower, "firefox") || strings.HasSuffix(lower, "cookies.sqlite"):
		store, err = firefox.CookieStore(cookieFilePath)
	case strings.Contains(lower, "safari") || strings.HasSuffix(lower, "cookies.binarycookies"):
		store, err = safari.CookieStore(cookieFilePath)
	case strings.Contains(lower, "chrome") || strings.HasSuffix(lower, "cookies"):
		store, err = chrome.CookieStore(cookieFilePath)
	default:
		return nil, fmt.Errorf("unsupported cookie file format %q", cookieFilePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie store: %w", err)
	}
	defer store.Close()

	cookies, err := store.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(baseDomain))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	return cookies, nil
}
