package handlers

import (
	"net/http"
	"strconv"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/outline"
	"github.com/kimuponpon0312-alt/ronbun/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OutlineHandler handles HTTP requests for outline generation,
// evaluation, and persistence
type OutlineHandler struct {
	outlineService *service.OutlineService
	gradeService   *service.GradeService
	exportService  *service.ExportService
	usageService   *service.UsageService
}

// NewOutlineHandler creates a new outline handler
func NewOutlineHandler(
	outlineService *service.OutlineService,
	gradeService *service.GradeService,
	exportService *service.ExportService,
	usageService *service.UsageService,
) *OutlineHandler {
	return &OutlineHandler{
		outlineService: outlineService,
		gradeService:   gradeService,
		exportService:  exportService,
		usageService:   usageService,
	}
}

// GeneratePointsRequest represents the request body for generating
// section points
type GeneratePointsRequest struct {
	Field          string `json:"field" binding:"required"`
	Question       string `json:"question"`
	WordCount      int    `json:"wordCount"`
	SectionTitle   string `json:"sectionTitle" binding:"required"`
	InstructorType string `json:"instructorType"`
}

// GeneratePoints handles POST /api/points/generate
func (h *OutlineHandler) GeneratePoints(c *gin.Context) {
	var req GeneratePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.outlineService.GeneratePoints(c.Request.Context(), service.GeneratePointsRequest{
		Field:          models.Field(req.Field),
		Question:       req.Question,
		WordCount:      req.WordCount,
		SectionTitle:   req.SectionTitle,
		InstructorType: models.InstructorType(req.InstructorType),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GenerateAdditionalPointsRequest represents the request body for
// generating extra points in one section
type GenerateAdditionalPointsRequest struct {
	Field           string           `json:"field" binding:"required"`
	ExistingOutline []models.Section `json:"existingOutline" binding:"required"`
	TargetSection   string           `json:"targetSection" binding:"required"`
	Intent          string           `json:"intent"`
	Question        string           `json:"question"`
	InstructorType  string           `json:"instructorType"`
}

// GenerateAdditionalPoints handles POST /api/points/additional
func (h *OutlineHandler) GenerateAdditionalPoints(c *gin.Context) {
	var req GenerateAdditionalPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.outlineService.GenerateAdditionalPoints(c.Request.Context(), service.GenerateAdditionalPointsRequest{
		Field:           models.Field(req.Field),
		ExistingOutline: req.ExistingOutline,
		TargetSection:   req.TargetSection,
		Intent:          models.GenerationIntent(req.Intent),
		Question:        req.Question,
		InstructorType:  models.InstructorType(req.InstructorType),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GeneratePointsFromCommentRequest represents the request body for
// applying an instructor comment to a section
type GeneratePointsFromCommentRequest struct {
	Field            string           `json:"field" binding:"required"`
	ExistingOutline  []models.Section `json:"existingOutline" binding:"required"`
	TargetSection    string           `json:"targetSection" binding:"required"`
	CommentText      string           `json:"commentText" binding:"required"`
	CommentType      string           `json:"commentType"`
	Question         string           `json:"question"`
	InstructorType   string           `json:"instructorType"`
	TargetPointIndex *int             `json:"targetPointIndex"`
}

// GeneratePointsFromComment handles POST /api/points/comment
func (h *OutlineHandler) GeneratePointsFromComment(c *gin.Context) {
	var req GeneratePointsFromCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.outlineService.GeneratePointsFromComment(c.Request.Context(), service.GeneratePointsFromCommentRequest{
		Field:            models.Field(req.Field),
		ExistingOutline:  req.ExistingOutline,
		TargetSection:    req.TargetSection,
		CommentText:      req.CommentText,
		CommentType:      service.CommentType(req.CommentType),
		Question:         req.Question,
		InstructorType:   models.InstructorType(req.InstructorType),
		TargetPointIndex: req.TargetPointIndex,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ClassifyPointsRequest represents the request body for tagging points
type ClassifyPointsRequest struct {
	Points       []string `json:"points" binding:"required"`
	SelectedTags []string `json:"selectedTags"`
}

// ClassifyPoints handles POST /api/points/classify
func (h *OutlineHandler) ClassifyPoints(c *gin.Context) {
	var req ClassifyPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	tagged := outline.ClassifyPoints(req.Points)

	if len(req.SelectedTags) > 0 {
		selected := make([]models.PointTag, 0, len(req.SelectedTags))
		for _, tag := range req.SelectedTags {
			selected = append(selected, models.PointTag(tag))
		}
		tagged = outline.FilterByTags(tagged, selected)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"taggedPoints": tagged,
		},
	})
}

// GenerateSentenceRequest represents the request body for an opening
// sentence
type GenerateSentenceRequest struct {
	Field          string `json:"field" binding:"required"`
	Point          string `json:"point" binding:"required"`
	SectionContext string `json:"sectionContext"`
}

// GenerateSentence handles POST /api/sentence
func (h *OutlineHandler) GenerateSentence(c *gin.Context) {
	var req GenerateSentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	sentence := h.gradeService.GenerateSentence(c.Request.Context(), models.Field(req.Field), req.Point, req.SectionContext)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sentence": sentence,
		},
	})
}

// GradeOutlineRequest represents the request body for evaluating an
// outline
type GradeOutlineRequest struct {
	Field    string               `json:"field" binding:"required"`
	Question string               `json:"question" binding:"required"`
	Outline  models.ReportOutline `json:"outline" binding:"required"`
}

// GradeOutline handles POST /api/outlines/grade
func (h *OutlineHandler) GradeOutline(c *gin.Context) {
	var req GradeOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.gradeService.GradeOutline(c.Request.Context(), models.Field(req.Field), req.Question, req.Outline)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// DiffOutlinesRequest represents the request body for comparing two
// outline snapshots
type DiffOutlinesRequest struct {
	OldOutline models.ReportOutline `json:"oldOutline" binding:"required"`
	NewOutline models.ReportOutline `json:"newOutline" binding:"required"`
}

// DiffOutlines handles POST /api/outlines/diff
func (h *OutlineHandler) DiffOutlines(c *gin.Context) {
	var req DiffOutlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := outline.Diff(req.OldOutline, req.NewOutline)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// SuggestReferencesRequest represents the request body for reading
// suggestions
type SuggestReferencesRequest struct {
	Field  string   `json:"field" binding:"required"`
	Points []string `json:"points" binding:"required"`
}

// SuggestReferences handles POST /api/references/suggest
func (h *OutlineHandler) SuggestReferences(c *gin.Context) {
	var req SuggestReferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	field := models.Field(req.Field)
	if !field.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FIELD",
				"message": "Unknown field: " + req.Field,
			},
		})
		return
	}

	suggestions := outline.SuggestReferences(field, req.Points)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"suggestions": suggestions,
		},
	})
}

// SaveOutlineRequest represents the request body for persisting an
// outline snapshot
type SaveOutlineRequest struct {
	Field          string          `json:"field" binding:"required"`
	Topic          string          `json:"topic" binding:"required"`
	WordCount      int             `json:"wordCount"`
	SupervisorType string          `json:"supervisorType"`
	Sections       models.Sections `json:"sections" binding:"required"`
	CoreQuestion   *string         `json:"coreQuestion"`
}

// SaveOutline handles POST /api/outlines
func (h *OutlineHandler) SaveOutline(c *gin.Context) {
	user := currentUser(c)

	var req SaveOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	saved := &models.SavedOutline{
		UserID:         user.Email,
		Field:          models.Field(req.Field),
		Topic:          req.Topic,
		WordCount:      req.WordCount,
		SupervisorType: req.SupervisorType,
		Sections:       req.Sections,
		CoreQuestion:   req.CoreQuestion,
	}

	if err := h.outlineService.SaveOutline(c.Request.Context(), saved); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SAVE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    saved,
	})
}

// ListOutlines handles GET /api/outlines
func (h *OutlineHandler) ListOutlines(c *gin.Context) {
	user := currentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	outlines, err := h.outlineService.ListOutlines(c.Request.Context(), user.Email, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    outlines,
	})
}

// GetOutline handles GET /api/outlines/:id
func (h *OutlineHandler) GetOutline(c *gin.Context) {
	user := currentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid outline ID format",
			},
		})
		return
	}

	saved, err := h.outlineService.GetOutline(c.Request.Context(), id, user.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Outline not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    saved,
	})
}

// ExportOutline handles POST /api/outlines/:id/export
func (h *OutlineHandler) ExportOutline(c *gin.Context) {
	user := currentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid outline ID format",
			},
		})
		return
	}

	var req struct {
		Format string `json:"format"`
	}
	// The body is optional; an empty body means a plain-text export
	_ = c.ShouldBindJSON(&req)

	saved, err := h.outlineService.GetOutline(c.Request.Context(), id, user.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Outline not found",
			},
		})
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), saved, req.Format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetUsage handles GET /api/usage
func (h *OutlineHandler) GetUsage(c *gin.Context) {
	user := currentUser(c)

	status := h.usageService.CheckLimit(c.Request.Context(), user.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    status,
	})
}
