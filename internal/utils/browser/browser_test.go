package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playlistPage = `<html><head>
<title>Playlist</title>
<link itemprop="thumbnailUrl" href="/img/thumb.jpg">
<meta property="og:image" content="https://cdn.example.com/cover.jpg">
</head><body></body></html>`

func TestScrapeCoverArt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(playlistPage))
	}))
	defer srv.Close()

	b := NewBrowser(nil)
	got, err := b.ScrapeCoverArt(context.Background(), srv.URL+"/playlist?list=PL1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", got)
}

func TestScrapeCoverArtRelativeFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><link itemprop="thumbnailUrl" href="/img/thumb.jpg"></head></html>`))
	}))
	defer srv.Close()

	got, err := NewBrowser(nil).ScrapeCoverArt(context.Background(), srv.URL+"/p")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/img/thumb.jpg", got)
}

func TestScrapeCoverArtMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>none</title></head></html>`))
	}))
	defer srv.Close()

	_, err := NewBrowser(nil).ScrapeCoverArt(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestDownloadCoverArt(t *testing.T) {
	img := []byte("\xff\xd8\xff\xe0fakejpeg")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.jpg") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(img)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	b := NewBrowser(nil)

	require.NoError(t, b.DownloadCoverArt(context.Background(), srv.URL+"/cover.jpg", dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, img, data)

	missing := filepath.Join(t.TempDir(), "cover.jpg")
	assert.Error(t, b.DownloadCoverArt(context.Background(), srv.URL+"/missing.jpg", missing))
	assert.NoFileExists(t, missing)

	assert.Error(t, b.DownloadCoverArt(context.Background(), "", missing))
}

func TestBaseDomain(t *testing.T) {
	got, err := BaseDomain("https://music.youtube.com/playlist?list=x")
	require.NoError(t, err)
	assert.Equal(t, "youtube.com", got)

	got, err = BaseDomain("https://www.bbc.co.uk/sounds")
	require.NoError(t, err)
	assert.Equal(t, "bbc.co.uk", got)
}

func TestFirstAttr(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><a href=""></a><a href=" /two "></a><a href="/three"></a></div>`))
	require.NoError(t, err)
	assert.Equal(t, "/two", firstAttr(doc.Find("a"), "href"))
	assert.Empty(t, firstAttr(doc.Find("img"), "src"))
}

func TestMergeCookies(t *testing.T) {
	a := &http.Cookie{Name: "SID", Value: "old", Domain: ".example.com", Path: "/"}
	b := &http.Cookie{Name: "SID", Value: "new", Domain: ".example.com", Path: "/"}
	c := &http.Cookie{Name: "PREF", Value: "x", Domain: ".example.com", Path: "/"}

	merged := mergeCookies([]*http.Cookie{a, nil}, []*http.Cookie{b, c})
	require.Len(t, merged, 2)
	assert.Equal(t, "new", merged[0].Value)
	assert.Equal(t, "PREF", merged[1].Name)
}

func TestCookieManagerDisabled(t *testing.T) {
	cm := NewCookieManager("", "")
	assert.False(t, cm.Enabled())

	cookies, err := cm.GetCookies("https://www.youtube.com")
	require.NoError(t, err)
	assert.Nil(t, cookies)

	var nilManager *CookieManager
	cookies, err = nilManager.GetCookies("https://www.youtube.com")
	require.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestCookieManagerUnsupportedFile(t *testing.T) {
	cm := NewCookieManager("", filepath.Join(t.TempDir(), "cookies.txt"))
	_, err := cm.GetCookies("https://www.youtube.com")
	assert.Error(t, err)
}
