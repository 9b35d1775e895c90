// Package pdf serves the PDF upload route: extract text, summarize, persist.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/models"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

// multipart framing overhead allowed on top of the file limit
const formOverhead = 1 << 20

const removeTimeout = 10 * time.Second

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Store interface {
	Create(ctx context.Context, item *models.Summary) error
}

// Archiver keeps a copy of the raw upload and returns its object key.
// Remove undoes an Archive whose summary row could not be saved.
type Archiver interface {
	Archive(ctx context.Context, filename string, payload []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

type summarizeResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

type Handler struct {
	summarizer Summarizer
	store      Store
	archiver   Archiver
	maxBytes   int64
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewHandler wires the route. archiver may be nil when object storage is off.
func NewHandler(summarizer Summarizer, store Store, archiver Archiver, maxBytes int64, m *metrics.Metrics, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		summarizer: summarizer,
		store:      store,
		archiver:   archiver,
		maxBytes:   maxBytes,
		metrics:    m,
		log:        log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, limitMW ...gin.HandlerFunc) {
	handlers := append([]gin.HandlerFunc{authMW}, limitMW...)
	handlers = append(handlers, h.summarize)
	rg.Group("/pdf").POST("/summarize", handlers...)
}

// POST /pdf/summarize
func (h *Handler) summarize(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(c, h.tooLargeMessage())
			return
		}
		response.BadRequest(c, "A PDF file is required in the \"file\" field")
		return
	}
	if header.Size > h.maxBytes {
		response.PayloadTooLarge(c, h.tooLargeMessage())
		return
	}

	payload, err := readUpload(header)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}

	text, err := ExtractText(payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoText):
			response.UnprocessableEntity(c, "No extractable text found in PDF")
		case errors.Is(err, ErrUnreadable):
			_ = c.Error(err)
			response.BadRequest(c, "Could not read PDF")
		default:
			response.InternalErrorMsg(c, err, "Failed to read PDF")
		}
		return
	}

	ctx := c.Request.Context()
	title := filepath.Base(strings.TrimSpace(header.Filename))

	summary, err := h.summarizer.Summarize(ctx, text)
	if err != nil {
		response.InternalErrorMsg(c, err, "Failed to summarize PDF")
		return
	}

	sourceKey := h.archive(ctx, title, payload, header.Header.Get("Content-Type"))

	item := &models.Summary{
		UserID:      middleware.CurrentUserID(c),
		SourceType:  models.SourcePDF,
		Title:       title,
		SummaryText: summary,
		SourceKey:   sourceKey,
	}
	if err := h.store.Create(ctx, item); err != nil {
		h.discardArchive(sourceKey)
		response.InternalErrorMsg(c, err, "Failed to save summary")
		return
	}
	h.metrics.SummaryCreated(string(models.SourcePDF))

	response.OK(c, summarizeResponse{ID: item.ID, Summary: item.SummaryText})
}

// archive failures are logged and do not fail the request.
func (h *Handler) archive(ctx context.Context, filename string, payload []byte, contentType string) *string {
	if h.archiver == nil {
		return nil
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	key, err := h.archiver.Archive(ctx, filename, payload, contentType)
	if err != nil {
		h.log.Warn("pdf archive failed", zap.String("filename", filename), zap.Error(err))
		return nil
	}
	return &key
}

// discardArchive removes an object no row points at. It uses a fresh context
// so a cancelled request still cleans up.
func (h *Handler) discardArchive(key *string) {
	if key == nil || h.archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
	defer cancel()
	if err := h.archiver.Remove(ctx, *key); err != nil {
		h.log.Error("orphaned pdf archive", zap.String("key", *key), zap.Error(err))
	}
}

func (h *Handler) tooLargeMessage() string {
	return fmt.Sprintf("PDF exceeds the %d MB upload limit", h.maxBytes>>20)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
