package curriculum

import (
	"os"
	"strings"

	"k8s.io/klog/v2"
)

// Unit 词汇单元，对应词汇文件中一个 `===` 段落
type Unit struct {
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

// Group 单元内的一组词汇行，展示顺序即文件顺序
type Group struct {
	Lines []string `json:"lines"`
}

// ParseFile 解析词汇文件并返回单元大纲。
// 文件不存在或不可读时返回空大纲，词汇文件是可选的。
func ParseFile(path string) []Unit {
	data, err := os.ReadFile(path)
	if err != nil {
		klog.V(6).Infof("词汇文件不可读，返回空大纲: path=%s, err=%v", path, err)
		return []Unit{}
	}
	return Parse(string(data))
}

// Parse 按行扫描词汇文本。
// 识别四种结构标记：
//   - `===` 开始新单元
//   - `+++` 把上一条普通行提升为当前单元标题
//   - `---` 开始新词组（已打开的词组先归入当前单元，空组也保留）
//   - 其他非空行为内容行
//
// 标题行总是先作为普通行出现、再由下一行的 `+++` 确认，
// 因此标题确认之前出现的内容行不会进入任何词组。
func Parse(text string) []Unit {
	units := []Unit{}

	var current *Unit
	var group []string
	groupOpen := false
	previous := ""
	hasPrevious := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "==="):
			if current != nil {
				units = append(units, *current)
			}
			current = &Unit{Groups: []Group{}}
			hasPrevious = false
		case strings.HasPrefix(line, "+++"):
			if current != nil && hasPrevious {
				current.Title = previous
				hasPrevious = false
			}
		case strings.HasPrefix(line, "---"):
			if groupOpen && current != nil {
				current.Groups = append(current.Groups, Group{Lines: group})
			}
			group = []string{}
			groupOpen = true
		default:
			previous = line
			hasPrevious = true
			if groupOpen && current != nil && current.Title != "" {
				group = append(group, line)
			}
		}
	}

	if groupOpen && current != nil {
		current.Groups = append(current.Groups, Group{Lines: group})
	}
	if current != nil {
		units = append(units, *current)
	}

	return units
}
