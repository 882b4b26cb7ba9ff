package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kvxunz/vocabulary-analysis/config"
	"github.com/kvxunz/vocabulary-analysis/internal/handler"
)

func Setup(
	cfg *config.Config,
	vocabularyHandler *handler.VocabularyHandler,
	analysisHandler *handler.AnalysisHandler,
	audioHandler *handler.AudioHandler,
	templateHandler *handler.TemplateHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		api.GET("/vocabulary", vocabularyHandler.Outline)
		api.POST("/analyze", analysisHandler.Analyze)
		api.POST("/reanalyze", analysisHandler.Reanalyze)
		api.GET("/tts", audioHandler.Synthesize)

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", templateHandler.Create)
			templates.GET("/active", templateHandler.GetActive)
			templates.POST("/active", templateHandler.SetActive)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
		}
	}

	return r
}
