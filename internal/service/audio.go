package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// ErrNotConfigured 语音服务凭证未配置，请求在发起网络调用前被拒绝
var ErrNotConfigured = errors.New("speech service not configured")

// audioExt 缓存文件的固定扩展名
const audioExt = ".mp3"

// SpeechSynthesizer 语音合成客户端需要实现的能力
type SpeechSynthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, word string) ([]byte, error)
}

// AudioService 发音音频服务：磁盘缓存按需合成
type AudioService struct {
	dir   string
	synth SpeechSynthesizer
}

// NewAudioService 创建服务实例
func NewAudioService(dir string, synth SpeechSynthesizer) *AudioService {
	return &AudioService{dir: dir, synth: synth}
}

// CacheFilename 把单词转换为文件系统安全的缓存文件名：
// 只保留字母和数字，保留大小写，加固定扩展名。
// 不同单词按此规则可能折叠到同一文件，例如 "cat!" 与 "c a t"，
// 先合成者占用该缓存条目。
func CacheFilename(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String() + audioExt
}

// GetAudio 返回单词的发音音频与缓存文件名。
// 缓存文件存在时直接读取，零外部调用；否则合成后写入缓存。
// 写入先落临时文件再改名，合成失败不会在目标路径留下部分文件。
func (s *AudioService) GetAudio(ctx context.Context, word string) ([]byte, string, error) {
	if !s.synth.Configured() {
		return nil, "", ErrNotConfigured
	}

	filename := CacheFilename(word)
	path := filepath.Join(s.dir, filename)

	if data, err := os.ReadFile(path); err == nil {
		klog.V(6).Infof("音频缓存命中: word=%s, file=%s", word, filename)
		return data, filename, nil
	}

	data, err := s.synth.Synthesize(ctx, word)
	if err != nil {
		return nil, "", err
	}

	tmpPath := path + "." + uuid.New().String() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return nil, "", fmt.Errorf("failed to write audio cache: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("failed to finalize audio cache: %w", err)
	}

	klog.V(6).Infof("音频已合成并缓存: word=%s, file=%s, bytes=%d", word, filename, len(data))
	return data, filename, nil
}
