// Package browser handles operations relating to web scraping, cookie gathering, etc.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tubetag/internal/domain/consts"
	"tubetag/internal/utils/logging"

	"github.com/gocolly/colly"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// Cover image selectors, most specific first.
var coverSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`link[itemprop="thumbnailUrl"]`, "href"},
	{`link[rel="image_src"]`, "href"},
}

// Browser scrapes playlist pages and fetches images.
type Browser struct {
	cookies *CookieManager
	timeout time.Duration
}

// NewBrowser returns a Browser that attaches cookies from cm, which may be nil.
func NewBrowser(cm *CookieManager) *Browser {
	return &Browser{
		cookies: cm,
		timeout: consts.ScraperTimeout,
	}
}

// newCollector returns a fresh collector with cookies for targetURL applied.
func (b *Browser) newCollector(targetURL string, timeout time.Duration) (*colly.Collector, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(timeout)

	cookies, err := b.cookies.GetCookies(targetURL)
	if err != nil {
		logging.E("Failed to get cookies for %q: %v", targetURL, err)
	}
	if len(cookies) > 0 {
		if err := c.SetCookies(targetURL, cookies); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ScrapeCoverArt visits pageURL and returns the page's preview image URL.
func (b *Browser) ScrapeCoverArt(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c, err := b.newCollector(pageURL, b.timeout)
	if err != nil {
		return "", err
	}

	found := make([]string, len(coverSelectors))
	for i, sel := range coverSelectors {
		c.OnHTML("head", func(e *colly.HTMLElement) {
			if found[i] != "" {
				return
			}
			if v := firstAttr(e.DOM.Find(sel.selector), sel.attr); v != "" {
				found[i] = e.Request.AbsoluteURL(v)
			}
		})
	}

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("error visiting webpage (%s): %w", pageURL, err)
	}
	c.Wait()

	for _, u := range found {
		if u != "" {
			return u, nil
		}
	}
	return "", errors.New("no cover image on page")
}

// DownloadCoverArt fetches imageURL and writes it to destPath.
func (b *Browser) DownloadCoverArt(ctx context.Context, imageURL, destPath string) error {
	if imageURL == "" {
		return errors.New("no cover art URL")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := b.newCollector(imageURL, consts.CoverArtTimeout)
	if err != nil {
		return err
	}

	var saveErr error
	saved := false
	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK || len(r.Body) == 0 {
			saveErr = fmt.Errorf("unexpected cover art response (status %d, %d bytes)", r.StatusCode, len(r.Body))
			return
		}
		if err := os.WriteFile(destPath, r.Body, consts.PermsCoverFile); err != nil {
			saveErr = err
			return
		}
		saved = true
	})

	logging.I("Downloading cover art...")
	if err := c.Visit(imageURL); err != nil {
		return fmt.Errorf("unable to download cover art from %q: %w", imageURL, err)
	}
	c.Wait()

	if saveErr != nil {
		return saveErr
	}
	if !saved {
		return fmt.Errorf("no cover art received from %q", imageURL)
	}
	logging.S("Cover art downloaded successfully to %s", filepath.Base(destPath))
	return nil
}
