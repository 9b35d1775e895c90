package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ytlib "github.com/kkdai/youtube/v2"
)

const defaultFetchTimeout = 30 * time.Second

// ErrNoTranscript means none of the requested caption languages exist.
var ErrNoTranscript = errors.New("no transcript available for this video")

// TranscriptFetcher returns the plain transcript text of a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// CaptionFetcher reads caption tracks through the public player API.
type CaptionFetcher struct {
	client    *ytlib.Client
	languages []string
}

func NewCaptionFetcher(languages []string, timeout time.Duration) *CaptionFetcher {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &CaptionFetcher{
		client:    &ytlib.Client{HTTPClient: &http.Client{Timeout: timeout}},
		languages: languages,
	}
}

// Fetch tries each configured language in order and joins segments with a space.
func (f *CaptionFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("load video %s: %w", videoID, err)
	}

	var lastErr error
	for _, lang := range f.languages {
		transcript, err := f.client.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			lastErr = err
			continue
		}
		if text := joinSegments(transcript); text != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTranscript, lastErr)
	}
	return "", ErrNoTranscript
}

func joinSegments(transcript ytlib.VideoTranscript) string {
	parts := make([]string, 0, len(transcript))
	for _, seg := range transcript {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
