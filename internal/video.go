package internal

import (
	"regexp"
	"strings"
)

// videoIDPattern matches watch-style (v=<id>) and path-style (/<id>) URLs
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

var validIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video identifier out of a YouTube URL.
// Anything after the identifier (query parameters, fragments) is ignored.
func ExtractVideoID(videoURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(strings.TrimSpace(videoURL))
	if m == nil {
		return "", newError(KindIdentifierNotFound, nil, "could not extract video ID from %q", videoURL)
	}
	return m[1], nil
}

// ParseArg normalizes a YouTube URL or bare video ID into a watch URL and its ID
func ParseArg(arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if IsValidYouTubeID(arg) {
		return WatchURL(arg), arg, nil
	}

	id, err := ExtractVideoID(arg)
	if err != nil {
		return "", "", err
	}
	return arg, id, nil
}

// WatchURL returns the canonical watch page for a video ID
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	return validIDPattern.MatchString(id)
}
