// Package parsing turns raw catalog values into names and dates tubetag can use.
package parsing

import (
	"strings"

	"tubetag/internal/domain/consts"
)

var titleStripper = buildTitleStripper()

func buildTitleStripper() *strings.Replacer {
	pairs := make([]string, 0, len(consts.SanitizeBlacklist)*2)
	for _, r := range consts.SanitizeBlacklist {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}

// SanitizeTitle strips every blacklisted punctuation character from text so it can be used as a path segment.
//
// All other characters, whitespace included, keep their order.
func SanitizeTitle(text string) string {
	return titleStripper.Replace(text)
}

// CleanChannelName sanitizes an owner name and drops the "- Topic" suffix auto-generated channels carry.
func CleanChannelName(raw string) string {
	name := SanitizeTitle(raw)
	name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), consts.TopicSuffix))
	if name == "" {
		return consts.UnknownChannel
	}
	return name
}
