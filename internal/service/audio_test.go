package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeSynthesizer 记录调用次数，按预设数据或错误应答
type fakeSynthesizer struct {
	configured bool
	calls      int
	data       []byte
	err        error
}

func (f *fakeSynthesizer) Configured() bool { return f.configured }

func (f *fakeSynthesizer) Synthesize(ctx context.Context, word string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func TestCacheFilename(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"cat", "cat.mp3"},
		{"cat!", "cat.mp3"},
		{"c a t", "cat.mp3"},
		{"Hello-World", "HelloWorld.mp3"},
		{"naïve", "naïve.mp3"},
		{"词源", "词源.mp3"},
		{"...", ".mp3"},
	}
	for _, tc := range cases {
		if got := CacheFilename(tc.word); got != tc.want {
			t.Errorf("CacheFilename(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestGetAudioNotConfigured(t *testing.T) {
	synth := &fakeSynthesizer{configured: false}
	svc := NewAudioService(t.TempDir(), synth)

	if _, _, err := svc.GetAudio(context.Background(), "cat"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesis must not be attempted when unconfigured")
	}
}

func TestGetAudioMissSynthesizesAndCaches(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynthesizer{configured: true, data: []byte("mp3-bytes")}
	svc := NewAudioService(dir, synth)

	data, filename, err := svc.GetAudio(context.Background(), "cat")
	if err != nil {
		t.Fatalf("GetAudio error: %v", err)
	}
	if filename != "cat.mp3" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.Equal(data, synth.data) {
		t.Fatalf("unexpected audio data %q", data)
	}

	cached, err := os.ReadFile(filepath.Join(dir, "cat.mp3"))
	if err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
	if !bytes.Equal(cached, synth.data) {
		t.Fatalf("cache file content mismatch")
	}

	// 目录里不应残留临时文件
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the cache file in %s, found %d entries", dir, len(entries))
	}
}

func TestGetAudioHitSkipsSynthesis(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynthesizer{configured: true, data: []byte("mp3-bytes")}
	svc := NewAudioService(dir, synth)
	ctx := context.Background()

	if _, _, err := svc.GetAudio(ctx, "cat"); err != nil {
		t.Fatalf("GetAudio error: %v", err)
	}
	if _, _, err := svc.GetAudio(ctx, "cat"); err != nil {
		t.Fatalf("GetAudio error: %v", err)
	}
	if synth.calls != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", synth.calls)
	}
}

func TestGetAudioCollidingWordsShareEntry(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynthesizer{configured: true, data: []byte("mp3-bytes")}
	svc := NewAudioService(dir, synth)
	ctx := context.Background()

	// "cat!" 与 "c a t" 折叠到同一文件名，后者命中前者的缓存
	if _, _, err := svc.GetAudio(ctx, "cat!"); err != nil {
		t.Fatalf("GetAudio error: %v", err)
	}
	_, filename, err := svc.GetAudio(ctx, "c a t")
	if err != nil {
		t.Fatalf("GetAudio error: %v", err)
	}
	if filename != "cat.mp3" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if synth.calls != 1 {
		t.Fatalf("expected colliding words to share one synthesis, got %d calls", synth.calls)
	}
}

func TestGetAudioSynthesisFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	failure := errors.New("upstream unavailable")
	svc := NewAudioService(dir, &fakeSynthesizer{configured: true, err: failure})

	if _, _, err := svc.GetAudio(context.Background(), "cat"); !errors.Is(err, failure) {
		t.Fatalf("expected synthesis error, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed synthesis must not leave files, found %d", len(entries))
	}
}
