package service

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"github.com/kvxunz/vocabulary-analysis/internal/repository"
)

// ErrNoActiveTemplate 激活模板缺失，分析请求无法继续
var ErrNoActiveTemplate = errors.New("no active template found")

// WordAnalyzer 文本生成客户端需要实现的能力
type WordAnalyzer interface {
	Analyze(ctx context.Context, word, template string) (string, error)
}

// AnalysisService 单词分析服务：查缓存，未命中时生成并落库
type AnalysisService struct {
	cacheRepo repository.WordCacheRepository
	templates TemplateService
	analyzer  WordAnalyzer
}

// NewAnalysisService 创建服务实例
func NewAnalysisService(cacheRepo repository.WordCacheRepository, templates TemplateService, analyzer WordAnalyzer) *AnalysisService {
	return &AnalysisService{
		cacheRepo: cacheRepo,
		templates: templates,
		analyzer:  analyzer,
	}
}

// GetAnalysis 返回单词的分析文本。
// force=false 且缓存命中时直接返回，不发起任何外部请求；
// 否则取激活模板调用生成服务，成功后按 word 覆盖写入缓存。
// 生成失败不写缓存。同一单词的并发未命中可能重复生成，
// 由缓存键上的覆盖写收敛，不做单飞合并。
func (s *AnalysisService) GetAnalysis(ctx context.Context, word string, force bool) (string, error) {
	if !force {
		entry, err := s.cacheRepo.Get(word)
		if err == nil {
			klog.V(6).Infof("分析缓存命中: word=%s", word)
			return entry.Analysis, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("failed to query cache: %w", err)
		}
	}

	tpl, err := s.templates.GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return "", ErrNoActiveTemplate
		}
		return "", err
	}

	text, err := s.analyzer.Analyze(ctx, word, tpl.Content)
	if err != nil {
		return "", err
	}

	if err := s.cacheRepo.Upsert(&model.WordCache{Word: word, Analysis: text}); err != nil {
		return "", fmt.Errorf("failed to store analysis: %w", err)
	}

	klog.V(6).Infof("分析已生成并缓存: word=%s, force=%v, length=%d", word, force, len(text))
	return text, nil
}
