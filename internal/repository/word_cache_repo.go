package repository

import (
	"errors"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// wordCacheRepository 实现
type wordCacheRepository struct {
	db *gorm.DB
}

// NewWordCacheRepository 创建 Repository 实例
func NewWordCacheRepository(db *gorm.DB) WordCacheRepository {
	return &wordCacheRepository{db: db}
}

// Get 根据单词获取缓存条目
func (r *wordCacheRepository) Get(word string) (*model.WordCache, error) {
	var entry model.WordCache
	result := r.db.Where("word = ?", word).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// Upsert 按 word 插入或覆盖缓存条目
func (r *wordCacheRepository) Upsert(entry *model.WordCache) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word"}},
		DoUpdates: clause.AssignmentColumns([]string{"analysis"}),
	}).Create(entry).Error
}
