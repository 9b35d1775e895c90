// Package youtube serves the video route: transcript in, summary out. Nothing is stored.
package youtube

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/models"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type SummarizeDTO struct {
	URL string `json:"url" binding:"required"`
}

type Handler struct {
	transcripts TranscriptFetcher
	summarizer  Summarizer
	metrics     *metrics.Metrics
}

func NewHandler(transcripts TranscriptFetcher, summarizer Summarizer, m *metrics.Metrics) *Handler {
	return &Handler{transcripts: transcripts, summarizer: summarizer, metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limitMW ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, limitMW...), h.summarize)
	rg.Group("/youtube").POST("/summarize", handlers...)
}

// POST /youtube/summarize
func (h *Handler) summarize(c *gin.Context) {
	var dto SummarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Field \"url\" is required")
		return
	}

	videoID, err := ExtractVideoID(dto.URL)
	if err != nil {
		response.BadRequest(c, "Invalid YouTube URL")
		return
	}

	ctx := c.Request.Context()
	text, err := h.transcripts.Fetch(ctx, videoID)
	if err != nil {
		msg := "Failed to fetch transcript"
		if errors.Is(err, ErrNoTranscript) {
			msg = "No transcript available for this video"
		}
		response.InternalErrorMsg(c, err, msg)
		return
	}

	summary, err := h.summarizer.Summarize(ctx, text)
	if err != nil {
		response.InternalErrorMsg(c, err, "Failed to summarize video")
		return
	}
	h.metrics.SummaryCreated(string(models.SourceVideo))

	response.OK(c, gin.H{"summary": summary})
}
