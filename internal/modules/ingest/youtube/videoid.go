package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL means no video id could be recovered from the input.
var ErrInvalidURL = errors.New("could not extract a YouTube video id")

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID accepts watch, short-link, embed, shorts and live URLs as well
// as a bare 11-character id.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v", "e":
				candidate = segments[1]
			}
		}
	default:
		return "", ErrInvalidURL
	}

	if !videoIDPattern.MatchString(candidate) {
		return "", ErrInvalidURL
	}
	return candidate, nil
}
