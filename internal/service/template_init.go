package service

import (
	"os"

	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// fallbackTemplateContent 默认模板文件缺失时的兜底内容
const fallbackTemplateContent = "Please provide a default template."

// EnsureDefaultTemplate 初始化预置模板数据。
// 模板表为空时从默认模板文件创建一条记录（文件缺失则使用兜底内容），
// 并保证激活设置存在且指向一个真实模板。进程启动后
// "模板表非空、激活指针有效" 两个不变式即成立。
func EnsureDefaultTemplate(db *gorm.DB, templatePath string) error {
	var count int64
	if err := db.Model(&model.PromptTemplate{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		content := fallbackTemplateContent
		if data, err := os.ReadFile(templatePath); err == nil {
			content = string(data)
		} else {
			klog.V(6).Infof("默认模板文件不可读，使用兜底内容: path=%s, err=%v", templatePath, err)
		}

		if err := db.Create(&model.PromptTemplate{Name: "Default", Content: content}).Error; err != nil {
			return err
		}
		klog.V(6).Infof("已创建默认模板")
	}

	var settingCount int64
	if err := db.Model(&model.AppSetting{}).Count(&settingCount).Error; err != nil {
		return err
	}

	if settingCount == 0 {
		var first model.PromptTemplate
		if err := db.Order("id ASC").First(&first).Error; err != nil {
			return err
		}
		if err := db.Create(&model.AppSetting{ID: 1, ActiveTemplateID: first.ID}).Error; err != nil {
			return err
		}
		klog.V(6).Infof("已初始化激活模板设置: templateID=%d", first.ID)
	}

	return nil
}
