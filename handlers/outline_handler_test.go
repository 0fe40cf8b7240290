package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kimuponpon0312-alt/ronbun/cache"
	"github.com/kimuponpon0312-alt/ronbun/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter wires the routes that work without a database: generation,
// classification, diffing, sharing, and the auth guard.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shareCache := cache.New(0)
	t.Cleanup(func() { shareCache.Close() })

	outlineService := service.NewOutlineService()
	gradeService := service.NewGradeService()
	exportService := service.NewExportService()
	usageService := service.NewUsageService()
	shareService := service.NewShareService(service.WithShareCache(shareCache))

	outlineHandler := NewOutlineHandler(outlineService, gradeService, exportService, usageService)
	shareHandler := NewShareHandler(shareService)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/points/generate", UsageLimit(usageService, "generatePoints"), outlineHandler.GeneratePoints)
		api.POST("/points/classify", outlineHandler.ClassifyPoints)
		api.POST("/outlines/diff", outlineHandler.DiffOutlines)
		api.POST("/references/suggest", outlineHandler.SuggestReferences)
		api.GET("/outlines", RequireAuth(), outlineHandler.ListOutlines)
		api.POST("/share", shareHandler.CreateShare)
		api.GET("/share/:id", shareHandler.GetShare)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGeneratePoints_ReturnsRankedPoints(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/points/generate",
		`{"field":"literature","question":"語り手の信頼性について","wordCount":4000,"sectionTitle":"序論","instructorType":"理論重視型"}`)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var data struct {
		Points     []string `json:"points"`
		IsFallback bool     `json:"isFallback"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Points)
	assert.False(t, data.IsFallback)
}

func TestGeneratePoints_MissingFieldIsBadRequest(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/points/generate", `{"sectionTitle":"序論"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestClassifyPoints_TagsEachPoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/points/classify",
		`{"points":["理論の検証を行う","事例の紹介"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var data struct {
		TaggedPoints []struct {
			Text string `json:"text"`
			Tags []struct {
				Tag        string  `json:"tag"`
				Confidence float64 `json:"confidence"`
			} `json:"tags"`
		} `json:"taggedPoints"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.TaggedPoints, 2)
	assert.NotEmpty(t, data.TaggedPoints[0].Tags)
}

func TestDiffOutlines_ReportsChanges(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/outlines/diff",
		`{"oldOutline":{"sections":[{"title":"序論","points":["問題の提起"]}]},
		  "newOutline":{"sections":[{"title":"序論","points":["問題の提起","背景の整理"]}]}}`)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var data struct {
		HasChanges bool `json:"hasChanges"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.HasChanges)
}

func TestSuggestReferences_UnknownField(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/references/suggest",
		`{"field":"economics","points":["市場の分析"]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_FIELD", env.Error.Code)
}

func TestListOutlines_RequiresAuth(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/outlines", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "AUTH_REQUIRED", env.Error.Code)
}

func TestShareRoundTrip(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/share",
		`{"field":"literature","question":"語り手の信頼性について","wordCount":4000,
		  "instructorType":"理論重視型",
		  "outline":{"sections":[{"title":"序論","points":["問題の提起"]}]}}`)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)

	var created struct {
		ReportID string `json:"reportId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ReportID)

	got := doJSON(t, r, http.MethodGet, "/api/share/"+created.ReportID, "")
	require.Equal(t, http.StatusOK, got.Code)

	gotEnv := decodeEnvelope(t, got)
	var data struct {
		Question  string    `json:"question"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(gotEnv.Data, &data))
	assert.Equal(t, "語り手の信頼性について", data.Question)
	assert.False(t, data.CreatedAt.IsZero())
}

func TestGetShare_UnknownIDIsNotFound(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/share/no-such-id", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
