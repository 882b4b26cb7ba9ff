package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvxunz/vocabulary-analysis/internal/pkg/curriculum"
)

// VocabularyHandler 词汇大纲 Handler
type VocabularyHandler struct {
	vocabularyFile string
}

// NewVocabularyHandler 创建 Handler
func NewVocabularyHandler(vocabularyFile string) *VocabularyHandler {
	return &VocabularyHandler{vocabularyFile: vocabularyFile}
}

// Outline 返回词汇文件解析出的单元大纲。
// 每次请求重新解析，文件改动无需重启即可生效。
func (h *VocabularyHandler) Outline(c *gin.Context) {
	units := curriculum.ParseFile(h.vocabularyFile)
	c.JSON(http.StatusOK, gin.H{"data": units})
}
