package repository

import (
	"errors"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// TemplateRepository 提示词模板表与激活设置的仓储接口。
// 激活指针是 app_settings 表中 id=1 的单行记录，
// 删除激活模板时的改指与删除必须在同一事务内提交。
type TemplateRepository interface {
	List() ([]model.PromptTemplate, error)
	Get(id uint) (*model.PromptTemplate, error)
	Create(tpl *model.PromptTemplate) error
	Update(tpl *model.PromptTemplate) error
	NameExists(name string, excludeID uint) (bool, error)
	Count() (int64, error)
	// DeleteWithRepoint 删除模板；若被删除的模板是当前激活模板，
	// 先把激活指针改到剩余模板中 id 最小的一个，再删除行。
	DeleteWithRepoint(id uint) error
	GetActive() (*model.PromptTemplate, error)
	SetActive(id uint) error
}

// WordCacheRepository 单词分析缓存仓储接口
type WordCacheRepository interface {
	Get(word string) (*model.WordCache, error)
	// Upsert 按 word 插入或覆盖，首次生成与强制重新生成走同一条路径
	Upsert(entry *model.WordCache) error
}
