package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"github.com/kvxunz/vocabulary-analysis/internal/repository"
)

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateNameExists = errors.New("template name already exists")
	ErrLastTemplate       = errors.New("cannot delete the last template")
)

// TemplateSummary 列表项，只含 id 与名称
type TemplateSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Content string `json:"content" binding:"required"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Content string `json:"content" binding:"required"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context) ([]TemplateSummary, error)
	Get(ctx context.Context, id uint) (*model.PromptTemplate, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*model.PromptTemplate, error)
	Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*model.PromptTemplate, error)
	Delete(ctx context.Context, id uint) error
	GetActive(ctx context.Context) (*model.PromptTemplate, error)
	SetActive(ctx context.Context, id uint) error
}

// templateService 实现
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService 创建服务实例
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// List 按名称升序列出模板
func (s *templateService) List(ctx context.Context) ([]TemplateSummary, error) {
	templates, err := s.templateRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, tpl := range templates {
		summaries = append(summaries, TemplateSummary{ID: tpl.ID, Name: tpl.Name})
	}
	return summaries, nil
}

// Get 获取模板详情
func (s *templateService) Get(ctx context.Context, id uint) (*model.PromptTemplate, error) {
	tpl, err := s.templateRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tpl, nil
}

// Create 创建模板，名称不可重复
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*model.PromptTemplate, error) {
	exists, err := s.templateRepo.NameExists(req.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check template name: %w", err)
	}
	if exists {
		return nil, ErrTemplateNameExists
	}

	tpl := &model.PromptTemplate{
		Name:    req.Name,
		Content: req.Content,
	}
	if err := s.templateRepo.Create(tpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tpl, nil
}

// Update 更新模板，名称不可与其他模板重复
func (s *templateService) Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*model.PromptTemplate, error) {
	tpl, err := s.templateRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	exists, err := s.templateRepo.NameExists(req.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check template name: %w", err)
	}
	if exists {
		return nil, ErrTemplateNameExists
	}

	tpl.Name = req.Name
	tpl.Content = req.Content
	if err := s.templateRepo.Update(tpl); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return tpl, nil
}

// Delete 删除模板。最后一个模板不允许删除；
// 删除激活模板时由仓储在同一事务内改指激活设置。
func (s *templateService) Delete(ctx context.Context, id uint) error {
	count, err := s.templateRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if count <= 1 {
		return ErrLastTemplate
	}

	if err := s.templateRepo.DeleteWithRepoint(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// GetActive 获取当前激活的模板
func (s *templateService) GetActive(ctx context.Context) (*model.PromptTemplate, error) {
	tpl, err := s.templateRepo.GetActive()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get active template: %w", err)
	}
	return tpl, nil
}

// SetActive 设置激活模板
func (s *templateService) SetActive(ctx context.Context, id uint) error {
	if err := s.templateRepo.SetActive(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to set active template: %w", err)
	}
	return nil
}
