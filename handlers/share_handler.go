package handlers

import (
	"net/http"
	"strconv"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/service"

	"github.com/gin-gonic/gin"
)

// ShareHandler handles HTTP requests for share links and the public
// report gallery
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// CreateShareRequest represents the request body for creating a share
// link
type CreateShareRequest struct {
	Field          string               `json:"field" binding:"required"`
	Question       string               `json:"question" binding:"required"`
	WordCount      int                  `json:"wordCount"`
	InstructorType string               `json:"instructorType"`
	Outline        models.ReportOutline `json:"outline" binding:"required"`
	IsPublic       bool                 `json:"isPublic"`
}

// CreateShare handles POST /api/share
func (h *ShareHandler) CreateShare(c *gin.Context) {
	var req CreateShareRequest
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

	data := models.ShareData{
		Field:          models.Field(req.Field),
		Question:       req.Question,
		WordCount:      req.WordCount,
		InstructorType: req.InstructorType,
		Outline:        req.Outline,
	}

	reportID, err := h.shareService.CreateShare(c.Request.Context(), data, req.IsPublic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHARE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"reportId": reportID,
		},
	})
}

// GetShare handles GET /api/share/:id
func (h *ShareHandler) GetShare(c *gin.Context) {
	reportID := c.Param("id")

	data, err := h.shareService.GetShare(c.Request.Context(), reportID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "共有リンクが見つからないか、期限切れです",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// ListPublicReports handles GET /api/reports/public
func (h *ShareHandler) ListPublicReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	reports, err := h.shareService.ListPublicReports(c.Request.Context(), limit)
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
		"data":    reports,
	})
}
