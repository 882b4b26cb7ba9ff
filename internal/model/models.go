package model

// PromptTemplate 单词分析提示词模板
type PromptTemplate struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Content string `json:"content" gorm:"type:text;not null"`
}

// TableName 指定表名
func (PromptTemplate) TableName() string {
	return "prompt_templates"
}

// WordCache 单词分析缓存，word 为唯一键
type WordCache struct {
	Word     string `json:"word" gorm:"primaryKey;size:200"`
	Analysis string `json:"analysis" gorm:"type:text"`
}

// TableName 指定表名
func (WordCache) TableName() string {
	return "word_cache"
}

// AppSetting 全局设置，单行记录，ID 固定为 1
type AppSetting struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	ActiveTemplateID uint `json:"active_template_id"`
}

// TableName 指定表名
func (AppSetting) TableName() string {
	return "app_settings"
}
