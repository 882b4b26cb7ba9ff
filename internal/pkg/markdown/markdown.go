package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// 渲染配置与缓存内容的书写习惯保持一致：表格 + 围栏代码块
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML 将 markdown 文本渲染为 HTML 片段
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
