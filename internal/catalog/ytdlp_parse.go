package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/models"
)

type ytdlpThumbnail struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type ytdlpEntry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type ytdlpPlaylist struct {
	Type          string           `json:"_type"`
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Channel       string           `json:"channel"`
	Uploader      string           `json:"uploader"`
	WebpageURL    string           `json:"webpage_url"`
	ModifiedDate  string           `json:"modified_date"`
	PlaylistCount json.RawMessage  `json:"playlist_count"`
	Thumbnails    []ytdlpThumbnail `json:"thumbnails"`
	Entries       []ytdlpEntry     `json:"entries"`
}

type ytdlpVideo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
}

// parsePlaylistJSON decodes `yt-dlp -J --flat-playlist` output.
func parsePlaylistJSON(data []byte) (*PlaylistInfo, error) {
	var p ytdlpPlaylist
	if err := json.Unmarshal(bytes.TrimSpace(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode playlist JSON: %w", err)
	}
	if p.Type != "" && p.Type != "playlist" {
		return nil, fmt.Errorf("%w: source is a %s, not a playlist", errconsts.ErrNotFound, p.Type)
	}

	owner := p.Channel
	if owner == "" {
		owner = p.Uploader
	}

	info := &PlaylistInfo{
		ID:           p.ID,
		PageURL:      p.WebpageURL,
		Owner:        owner,
		Title:        p.Title,
		RawCount:     rawCount(p.PlaylistCount),
		Entries:      make([]models.PlaylistEntry, 0, len(p.Entries)),
		ModifiedDate: p.ModifiedDate,
	}

	for _, e := range p.Entries {
		if e.ID == "" {
			continue
		}
		info.Entries = append(info.Entries, models.PlaylistEntry{
			VideoID: e.ID,
			URL:     e.URL,
			Title:   e.Title,
		})
	}

	// yt-dlp lists thumbnails worst first
	for i := len(p.Thumbnails) - 1; i >= 0; i-- {
		th := p.Thumbnails[i]
		if th.URL == "" {
			continue
		}
		switch thumbnailKind(th) {
		case thumbPlaylist:
			info.Thumbnails = append(info.Thumbnails, th.URL)
		case thumbOwner:
			info.OwnerThumbnails = append(info.OwnerThumbnails, th.URL)
		}
	}
	return info, nil
}

type thumbKind int

const (
	thumbPlaylist thumbKind = iota
	thumbOwner
	thumbBanner
)

// thumbnailKind separates the channel avatar and banner yt-dlp appends after the playlist's own thumbnails.
//
// Avatars and banners are served from yt3.* hosts, playlist thumbnails from i.ytimg.com.
func thumbnailKind(th ytdlpThumbnail) thumbKind {
	id := strings.ToLower(th.ID)
	switch {
	case strings.Contains(id, "banner"):
		return thumbBanner
	case strings.Contains(id, "avatar"):
		return thumbOwner
	}
	if u, err := url.Parse(th.URL); err == nil && strings.HasPrefix(u.Hostname(), "yt3.") {
		return thumbOwner
	}
	return thumbPlaylist
}

// parseVideoJSON decodes a single-video `yt-dlp -J` dump.
func parseVideoJSON(data []byte) (*ytdlpVideo, error) {
	var v ytdlpVideo
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil, fmt.Errorf("failed to decode video JSON: %w", err)
	}
	return &v, nil
}

// rawCount returns the playlist count as text; null or missing becomes "".
func rawCount(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}

var notFoundMarkers = [...]string{
	"does not exist",
	"Unable to recognize playlist",
	"playlist is private",
	"unavailable",
	"HTTP Error 404",
	"Unsupported URL",
}

func isNotFoundOutput(out []byte) bool {
	s := string(out)
	for _, m := range notFoundMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func isPartialTransferOutput(out []byte) bool {
	s := string(out)
	for _, m := range consts.PartialTransferMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func firstErrorLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for _, l := range lines {
		if strings.HasPrefix(l, "ERROR:") {
			return strings.TrimSpace(l)
		}
	}
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}
	return ""
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
