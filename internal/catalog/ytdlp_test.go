package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"tubetag/internal/domain/errconsts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playlistDump = `{
  "_type": "playlist",
  "id": "PLabc",
  "title": "Greatest Hits",
  "channel": "Some Band - Topic",
  "uploader": "ignored",
  "webpage_url": "https://www.youtube.com/playlist?list=PLabc",
  "modified_date": "20220910",
  "playlist_count": 2,
  "thumbnails": [
    {"url": "https://i.ytimg.com/small.jpg"},
    {"url": "https://i.ytimg.com/large.jpg"},
    {"url": "https://yt3.ggpht.com/owner=s88"}
  ],
  "entries": [
    {"id": "vid1", "url": "https://www.youtube.com/watch?v=vid1", "title": "First"},
    {"id": "", "title": "broken"},
    {"id": "vid2", "url": "https://www.youtube.com/watch?v=vid2", "title": "Second"}
  ]
}`

type recordedCall struct {
	name string
	args []string
}

func fakeRunner(calls *[]recordedCall, stdout, stderr string, err error) runFunc {
	return func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return []byte(stdout), []byte(stderr), err
	}
}

func TestParsePlaylistJSON(t *testing.T) {
	t.Parallel()

	info, err := parsePlaylistJSON([]byte(playlistDump))
	require.NoError(t, err)

	assert.Equal(t, "PLabc", info.ID)
	assert.Equal(t, "Some Band - Topic", info.Owner)
	assert.Equal(t, "Greatest Hits", info.Title)
	assert.Equal(t, "2", info.RawCount)
	require.Len(t, info.Entries, 2)
	assert.Equal(t, "vid2", info.Entries[1].VideoID)
	assert.Equal(t, []string{"https://i.ytimg.com/large.jpg", "https://i.ytimg.com/small.jpg"}, info.Thumbnails)
	assert.Equal(t, []string{"https://yt3.ggpht.com/owner=s88"}, info.OwnerThumbnails)
	assert.Equal(t, "20220910", info.ModifiedDate)
}

const avatarOnlyDump = `{
  "_type": "playlist",
  "title": "x",
  "playlist_count": 0,
  "thumbnails": [
    {"url": "https://yt3.ggpht.com/avatar=s88"},
    {"url": "https://yt3.googleusercontent.com/avatar=s0", "id": "avatar_uncropped"},
    {"url": "https://yt3.googleusercontent.com/banner=w1060", "id": "banner_uncropped"}
  ]
}`

func TestParsePlaylistJSONOwnerThumbnails(t *testing.T) {
	t.Parallel()

	info, err := parsePlaylistJSON([]byte(avatarOnlyDump))
	require.NoError(t, err)
	assert.Empty(t, info.Thumbnails)
	assert.Equal(t, []string{
		"https://yt3.googleusercontent.com/avatar=s0",
		"https://yt3.ggpht.com/avatar=s88",
	}, info.OwnerThumbnails)
}

func TestResolveFallsBackToOwnerAvatar(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	y := NewYtDLP(YtDLPConfig{})
	y.run = fakeRunner(&calls, avatarOnlyDump, "", nil)

	meta, err := NewAdapter(y).Resolve(context.Background(), "PLx")
	require.NoError(t, err)
	assert.Equal(t, "https://yt3.googleusercontent.com/avatar=s0", meta.CoverArtURL)
	assert.Len(t, calls, 1)
}

func TestParsePlaylistJSONPlaceholderCount(t *testing.T) {
	t.Parallel()

	info, err := parsePlaylistJSON([]byte(`{"_type":"playlist","title":"x","uploader":"u","playlist_count":null}`))
	require.NoError(t, err)
	assert.Equal(t, "", info.RawCount)
	assert.Equal(t, "u", info.Owner)

	info, err = parsePlaylistJSON([]byte(`{"_type":"playlist","title":"x","playlist_count":"N/A"}`))
	require.NoError(t, err)
	assert.Equal(t, "N/A", info.RawCount)
}

func TestParsePlaylistJSONRejectsVideos(t *testing.T) {
	t.Parallel()

	_, err := parsePlaylistJSON([]byte(`{"_type":"video","id":"abc"}`))
	assert.ErrorIs(t, err, errconsts.ErrNotFound)

	_, err = parsePlaylistJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestYtDLPResolvePlaylist(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	y := NewYtDLP(YtDLPConfig{CookiesFromBrowser: "firefox"})
	y.run = fakeRunner(&calls, playlistDump, "", nil)

	info, err := y.ResolvePlaylist(context.Background(), "PLabc")
	require.NoError(t, err)
	assert.Equal(t, "Greatest Hits", info.Title)

	require.Len(t, calls, 1)
	assert.Equal(t, "yt-dlp", calls[0].name)
	args := strings.Join(calls[0].args, " ")
	assert.Contains(t, args, "--cookies-from-browser firefox")
	assert.Contains(t, args, "-J --flat-playlist")
	assert.True(t, strings.HasSuffix(args, "https://www.youtube.com/playlist?list=PLabc"))
}

func TestYtDLPResolvePlaylistNotFound(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	y := NewYtDLP(YtDLPConfig{})
	y.run = fakeRunner(&calls, "", "ERROR: [youtube:tab] PLnope: The playlist does not exist.", errors.New("exit status 1"))

	_, err := y.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLnope")
	assert.ErrorIs(t, err, errconsts.ErrNotFound)

	y.run = fakeRunner(&calls, "", "ERROR: Unable to download API page: timed out", errors.New("exit status 1"))
	_, err = y.ResolvePlaylist(context.Background(), "PLnope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errconsts.ErrNotFound)
	assert.Contains(t, err.Error(), "timed out")
}

func TestYtDLPStreamDownload(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	y := NewYtDLP(YtDLPConfig{CookieFile: "/tmp/cookies.txt"})
	y.run = fakeRunner(&calls, `{"id":"vid1","title":"First","format_id":"18","ext":"mp4"}`, "", nil)

	h, err := y.ResolveStream(context.Background(), "vid1", QualityLowest)
	require.NoError(t, err)
	assert.Equal(t, "First", h.Title())
	assert.Equal(t, QualityLowest, h.Quality())
	assert.Contains(t, strings.Join(calls[0].args, " "), "-f worst")

	dest := t.TempDir()
	want := filepath.Join(dest, "vid1.mp4")
	y.run = fakeRunner(&calls, "[download] Destination\n"+want+"\n", "", nil)

	got, err := h.Download(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	args := strings.Join(calls[1].args, " ")
	assert.Contains(t, args, "--cookies /tmp/cookies.txt")
	assert.Contains(t, args, "-f 18")
	assert.Contains(t, args, filepath.Join(dest, "%(id)s.%(ext)s"))
	assert.True(t, strings.HasSuffix(args, "https://www.youtube.com/watch?v=vid1"))
}

func TestYtDLPStreamPartialTransfer(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	y := NewYtDLP(YtDLPConfig{})
	h := &ytdlpStream{y: y, url: VideoURL("vid1"), videoID: "vid1", quality: QualityHighest}

	y.run = fakeRunner(&calls, "", "ERROR: IncompleteRead(1024 bytes read, 2048 more expected)", errors.New("exit status 1"))
	_, err := h.Download(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, errconsts.ErrPartialTransfer)
	assert.Contains(t, strings.Join(calls[0].args, " "), "-f best")

	y.run = fakeRunner(&calls, "", "", nil)
	_, err = h.Download(context.Background(), t.TempDir())
	assert.Error(t, err, "no reported file is an error")
}

func TestURLHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.youtube.com/playlist?list=PL1", PlaylistURL("PL1"))
	assert.Equal(t, "https://example.com/p", PlaylistURL("https://example.com/p"))
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", VideoURL("abc"))
}
