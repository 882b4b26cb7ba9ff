package repository

import (
	"errors"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingID app_settings 单行记录的固定主键
const settingID = 1

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 按名称升序列出全部模板
func (r *templateRepository) List() ([]model.PromptTemplate, error) {
	var templates []model.PromptTemplate
	result := r.db.Order("name ASC").Find(&templates)
	return templates, result.Error
}

// Get 根据 ID 获取模板
func (r *templateRepository) Get(id uint) (*model.PromptTemplate, error) {
	var tpl model.PromptTemplate
	result := r.db.First(&tpl, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &tpl, nil
}

// Create 创建模板
func (r *templateRepository) Create(tpl *model.PromptTemplate) error {
	return r.db.Create(tpl).Error
}

// Update 更新模板
func (r *templateRepository) Update(tpl *model.PromptTemplate) error {
	return r.db.Save(tpl).Error
}

// NameExists 检查名称是否已被其他模板占用
func (r *templateRepository) NameExists(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.PromptTemplate{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count 统计模板总数
func (r *templateRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.PromptTemplate{}).Count(&count).Error
	return count, err
}

// DeleteWithRepoint 删除模板，必要时先改指激活设置。
// 两步在同一事务内提交，激活指针不会出现悬空的中间状态。
func (r *templateRepository) DeleteWithRepoint(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var setting model.AppSetting
		err := tx.First(&setting, settingID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil && setting.ActiveTemplateID == id {
			var next model.PromptTemplate
			if err := tx.Where("id <> ?", id).Order("id ASC").First(&next).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// 没有可改指的模板，调用方应当先拒绝删除最后一个模板
					return ErrNotFound
				}
				return err
			}
			if err := tx.Model(&model.AppSetting{}).
				Where("id = ?", settingID).
				Update("active_template_id", next.ID).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.PromptTemplate{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetActive 获取当前激活的模板
func (r *templateRepository) GetActive() (*model.PromptTemplate, error) {
	var setting model.AppSetting
	if err := r.db.First(&setting, settingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var tpl model.PromptTemplate
	if err := r.db.First(&tpl, setting.ActiveTemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// SetActive 把激活指针指向指定模板，模板必须存在
func (r *templateRepository) SetActive(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tpl model.PromptTemplate
		if err := tx.First(&tpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"active_template_id"}),
		}).Create(&model.AppSetting{ID: settingID, ActiveTemplateID: id}).Error
	})
}
