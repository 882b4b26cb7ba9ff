package llm

import (
	"regexp"
	"strings"
)

var (
	// preamblePattern 模型偶尔会在正文前加一句"好的，这是对 xx 的词源分析："
	preamblePattern = regexp.MustCompile(`(?i)^好的，这是对.*?的词源分析：\s*`)
	// headingPattern 正文开头重复单词本身的一级标题
	headingPattern = regexp.MustCompile(`^#\s[^\n]*\s*`)
)

// CleanAnalysis 清理生成结果：先去掉开场白，再去掉开头的一级标题行，
// 最后去掉首尾空白。两个步骤有顺序依赖，整体是幂等的。
func CleanAnalysis(text string) string {
	text = preamblePattern.ReplaceAllString(text, "")
	text = headingPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
