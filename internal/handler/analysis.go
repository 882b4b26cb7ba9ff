package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvxunz/vocabulary-analysis/internal/pkg/markdown"
	"github.com/kvxunz/vocabulary-analysis/internal/service"
)

// AnalysisHandler 单词分析 Handler
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler 创建 Handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

type analyzeRequest struct {
	Word string `json:"word" binding:"required"`
}

// Analyze 查询或生成单词分析，返回渲染后的 HTML
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	text, err := h.analysisService.GetAnalysis(c.Request.Context(), req.Word, false)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveTemplate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active template found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	html, err := markdown.ToHTML(text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": html})
}

// Reanalyze 强制重新生成并覆盖缓存，返回原始 markdown，
// 由前端自行渲染
func (h *AnalysisHandler) Reanalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	text, err := h.analysisService.GetAnalysis(c.Request.Context(), req.Word, true)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveTemplate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active template found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": text})
}
