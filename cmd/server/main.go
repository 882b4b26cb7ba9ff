package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/kvxunz/vocabulary-analysis/config"
	"github.com/kvxunz/vocabulary-analysis/internal/handler"
	"github.com/kvxunz/vocabulary-analysis/internal/pkg/database"
	"github.com/kvxunz/vocabulary-analysis/internal/pkg/llm"
	"github.com/kvxunz/vocabulary-analysis/internal/repository"
	"github.com/kvxunz/vocabulary-analysis/internal/router"
	"github.com/kvxunz/vocabulary-analysis/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.Data.AudioCacheDir, 0755); err != nil {
		log.Fatalf("Failed to create audio cache directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 保证默认模板与激活设置存在
	if err := service.EnsureDefaultTemplate(db, cfg.Data.TemplateFile); err != nil {
		log.Fatalf("Failed to initialize default template: %v", err)
	}

	// 初始化外部服务客户端
	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// 初始化 Repository
	templateRepo := repository.NewTemplateRepository(db)
	cacheRepo := repository.NewWordCacheRepository(db)

	// 初始化 Service
	templateService := service.NewTemplateService(templateRepo)
	analysisService := service.NewAnalysisService(cacheRepo, templateService, llmClient)
	audioService := service.NewAudioService(cfg.Data.AudioCacheDir, llmClient)

	// 初始化 Handler
	vocabularyHandler := handler.NewVocabularyHandler(cfg.Data.VocabularyFile)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	audioHandler := handler.NewAudioHandler(audioService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// 设置路由
	r := router.Setup(cfg, vocabularyHandler, analysisHandler, audioHandler, templateHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
