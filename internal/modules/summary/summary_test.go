package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ayushmaan100/Smart-content-finder/internal/database"
	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/models"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/processing/ai"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "summary.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fakeStudy struct {
	err     error
	gotText string
}

func (f *fakeStudy) Flashcards(_ context.Context, text string) (*ai.FlashcardSet, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	raw := "Q: What is a cell?\nA: The basic unit of life."
	return &ai.FlashcardSet{Raw: raw, Cards: ai.ParseFlashcards(raw)}, nil
}

func (f *fakeStudy) MCQs(_ context.Context, text string) (*ai.MCQSet, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return &ai.MCQSet{Raw: "unparseable"}, nil
}

// fakeAuth trusts the X-User header so tests can switch owners.
func fakeAuth(c *gin.Context) {
	c.Set(middleware.ContextKeyUserID, c.GetHeader("X-User"))
	c.Next()
}

func newRouter(svc *Service, study StudyGenerator) *gin.Engine {
	r := gin.New()
	NewHandler(svc, study).RegisterRoutes(r.Group(""), fakeAuth)
	return r
}

func get(r http.Handler, path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User", user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, svc *Service, owner, title string, at time.Time) *models.Summary {
	t.Helper()
	item := &models.Summary{
		Base:        models.Base{CreatedAt: at},
		UserID:      owner,
		SourceType:  models.SourcePDF,
		Title:       title,
		SummaryText: "## " + title + "\n\n- point",
	}
	require.NoError(t, svc.Create(context.Background(), item))
	require.NotEmpty(t, item.ID)
	return item
}

func TestServiceOwnership(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()
	now := time.Now()

	older := seed(t, svc, "alice", "Old", now.Add(-time.Hour))
	newer := seed(t, svc, "alice", "New", now)
	bobs := seed(t, svc, "bob", "Bob", now)

	items, err := svc.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)

	got, err := svc.GetOwned(ctx, "alice", older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)

	_, err = svc.GetOwned(ctx, "alice", bobs.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOwned(ctx, "alice", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, svc.Create(ctx, &models.Summary{SummaryText: "x"}))
}

func TestListHandler(t *testing.T) {
	svc := NewService(newTestDB(t))
	seed(t, svc, "alice", "A", time.Now())
	r := newRouter(svc, &fakeStudy{})

	rec := get(r, "/summary/list", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0]["title"])
	assert.Equal(t, "pdf", items[0]["source_type"])

	rec = get(r, "/summary/list", "nobody")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetHandler(t *testing.T) {
	svc := NewService(newTestDB(t))
	item := seed(t, svc, "alice", "Cells", time.Now())
	r := newRouter(svc, &fakeStudy{})

	rec := get(r, "/summary/"+item.ID, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, item.ID, body["id"])
	assert.NotContains(t, body, "summary_html")

	rec = get(r, "/summary/"+item.ID+"?format=html", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	body = map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["summary_html"], "<h2>Cells</h2>")

	rec = get(r, "/summary/"+item.ID, "bob")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Not found"`)
}

func TestFlashcardsHandler(t *testing.T) {
	svc := NewService(newTestDB(t))
	item := seed(t, svc, "alice", "Cells", time.Now())
	study := &fakeStudy{}
	r := newRouter(svc, study)

	rec := get(r, "/summary/"+item.ID+"/flashcards", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, item.SummaryText, study.gotText)
	assert.JSONEq(t, `{
		"flashcards": "Q: What is a cell?\nA: The basic unit of life.",
		"cards": [{"question": "What is a cell?", "answer": "The basic unit of life."}]
	}`, rec.Body.String())

	rec = get(r, "/summary/"+item.ID+"/flashcards", "bob")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Summary not found"`)
}

func TestMCQsHandler(t *testing.T) {
	svc := NewService(newTestDB(t))
	item := seed(t, svc, "alice", "Cells", time.Now())
	r := newRouter(svc, &fakeStudy{})

	rec := get(r, "/summary/"+item.ID+"/mcqs", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mcqs":"unparseable","questions":[]}`, rec.Body.String())

	rec = get(r, "/summary/nope/mcqs", "alice")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudyFailure(t *testing.T) {
	svc := NewService(newTestDB(t))
	item := seed(t, svc, "alice", "Cells", time.Now())
	r := newRouter(svc, &fakeStudy{err: errors.New("quota exceeded")})

	rec := get(r, "/summary/"+item.ID+"/mcqs", "alice")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "quota")
}

func TestDatabaseFailureHidesDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	item := seed(t, svc, "alice", "Cells", time.Now())
	r := newRouter(svc, &fakeStudy{})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	cases := map[string]string{
		"/summary/list":                       "Failed to load summaries",
		"/summary/" + item.ID:                 "Failed to load summary",
		"/summary/" + item.ID + "/flashcards": "Failed to load summary",
	}
	for path, msg := range cases {
		rec := get(r, path, "alice")
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, msg, body.Message, path)
		assert.NotContains(t, rec.Body.String(), "sql", path)
	}
}
