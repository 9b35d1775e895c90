package summary

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/models"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/processing/ai"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/processing/markdown"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

// StudyGenerator derives study material from stored summary text.
type StudyGenerator interface {
	Flashcards(ctx context.Context, text string) (*ai.FlashcardSet, error)
	MCQs(ctx context.Context, text string) (*ai.MCQSet, error)
}

type summaryResponse struct {
	models.Summary
	SummaryHTML string `json:"summary_html,omitempty"`
}

type flashcardsResponse struct {
	Flashcards string         `json:"flashcards"`
	Cards      []ai.Flashcard `json:"cards"`
}

type mcqsResponse struct {
	MCQs      string   `json:"mcqs"`
	Questions []ai.MCQ `json:"questions"`
}

type Handler struct {
	svc   *Service
	study StudyGenerator
}

func NewHandler(svc *Service, study StudyGenerator) *Handler {
	return &Handler{svc: svc, study: study}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/summary", authMW)
	g.GET("/list", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/flashcards", h.flashcards)
	g.GET("/:id/mcqs", h.mcqs)
}

// GET /summary/list
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListByOwner(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalErrorMsg(c, err, "Failed to load summaries")
		return
	}
	response.OK(c, items)
}

// GET /summary/:id
func (h *Handler) get(c *gin.Context) {
	item, ok := h.loadOwned(c, "Not found")
	if !ok {
		return
	}
	out := summaryResponse{Summary: *item}
	if strings.EqualFold(c.Query("format"), "html") {
		out.SummaryHTML = markdown.RenderHTML(item.SummaryText)
	}
	response.OK(c, out)
}

// GET /summary/:id/flashcards
func (h *Handler) flashcards(c *gin.Context) {
	item, ok := h.loadOwned(c, "Summary not found")
	if !ok {
		return
	}
	set, err := h.study.Flashcards(c.Request.Context(), item.SummaryText)
	if err != nil {
		response.InternalErrorMsg(c, err, "Failed to generate flashcards")
		return
	}
	response.OK(c, flashcardsResponse{Flashcards: set.Raw, Cards: nonNil(set.Cards)})
}

// GET /summary/:id/mcqs
func (h *Handler) mcqs(c *gin.Context) {
	item, ok := h.loadOwned(c, "Summary not found")
	if !ok {
		return
	}
	set, err := h.study.MCQs(c.Request.Context(), item.SummaryText)
	if err != nil {
		response.InternalErrorMsg(c, err, "Failed to generate MCQs")
		return
	}
	response.OK(c, mcqsResponse{MCQs: set.Raw, Questions: nonNil(set.Questions)})
}

func (h *Handler) loadOwned(c *gin.Context, notFoundMsg string) (*models.Summary, bool) {
	item, err := h.svc.GetOwned(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, notFoundMsg)
			return nil, false
		}
		response.InternalErrorMsg(c, err, "Failed to load summary")
		return nil, false
	}
	return item, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
