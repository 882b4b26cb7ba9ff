package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvxunz/vocabulary-analysis/internal/service"
)

// AudioHandler 发音音频 Handler
type AudioHandler struct {
	audioService *service.AudioService
}

// NewAudioHandler 创建 Handler
func NewAudioHandler(audioService *service.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// Synthesize 返回单词发音音频，未命中缓存时按需合成
func (h *AudioHandler) Synthesize(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No word provided"})
		return
	}

	data, _, err := h.audioService.GetAudio(c.Request.Context(), word)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "TTS service not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TTS generation failed"})
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", data)
}
