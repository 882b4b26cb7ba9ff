package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/kvxunz/vocabulary-analysis/internal/model"
	"github.com/kvxunz/vocabulary-analysis/internal/repository"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.PromptTemplate{}, &model.WordCache{}, &model.AppSetting{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func newTemplateService(t *testing.T, db *gorm.DB) TemplateService {
	t.Helper()
	return NewTemplateService(repository.NewTemplateRepository(db))
}

func TestEnsureDefaultTemplateFromFile(t *testing.T) {
	db := newTestDB(t)

	path := filepath.Join(t.TempDir(), "word_template.md")
	if err := os.WriteFile(path, []byte("## 词源\n..."), 0644); err != nil {
		t.Fatalf("write template file error: %v", err)
	}

	if err := EnsureDefaultTemplate(db, path); err != nil {
		t.Fatalf("EnsureDefaultTemplate error: %v", err)
	}

	svc := newTemplateService(t, db)
	active, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive error: %v", err)
	}
	if active.Name != "Default" {
		t.Fatalf("unexpected active template name: %q", active.Name)
	}
	if active.Content != "## 词源\n..." {
		t.Fatalf("unexpected template content: %q", active.Content)
	}
}

func TestEnsureDefaultTemplateFallback(t *testing.T) {
	db := newTestDB(t)

	if err := EnsureDefaultTemplate(db, filepath.Join(t.TempDir(), "missing.md")); err != nil {
		t.Fatalf("EnsureDefaultTemplate error: %v", err)
	}

	svc := newTemplateService(t, db)
	active, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive error: %v", err)
	}
	if active.Content != fallbackTemplateContent {
		t.Fatalf("expected fallback content, got %q", active.Content)
	}
}

func TestEnsureDefaultTemplateIdempotent(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 2; i++ {
		if err := EnsureDefaultTemplate(db, "missing.md"); err != nil {
			t.Fatalf("EnsureDefaultTemplate error: %v", err)
		}
	}

	var count int64
	if err := db.Model(&model.PromptTemplate{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 template after repeated init, got %d", count)
	}
}

func TestTemplateServiceCreateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newTemplateService(t, db)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateTemplateRequest{Name: "Default", Content: "内容"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(ctx, CreateTemplateRequest{Name: "Default", Content: "其他内容"}); !errors.Is(err, ErrTemplateNameExists) {
		t.Fatalf("expected ErrTemplateNameExists, got %v", err)
	}
}

func TestTemplateServiceUpdateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newTemplateService(t, db)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateTemplateRequest{Name: "A", Content: "a"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(ctx, CreateTemplateRequest{Name: "B", Content: "b"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(ctx, a.ID, UpdateTemplateRequest{Name: "B", Content: "a"}); !errors.Is(err, ErrTemplateNameExists) {
		t.Fatalf("expected ErrTemplateNameExists, got %v", err)
	}
	// 改回自己的名字不算重复
	if _, err := svc.Update(ctx, a.ID, UpdateTemplateRequest{Name: "A", Content: "a2"}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestTemplateServiceDeleteLastRefused(t *testing.T) {
	db := newTestDB(t)
	if err := EnsureDefaultTemplate(db, "missing.md"); err != nil {
		t.Fatalf("EnsureDefaultTemplate error: %v", err)
	}
	svc := newTemplateService(t, db)
	ctx := context.Background()

	active, err := svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive error: %v", err)
	}
	if err := svc.Delete(ctx, active.ID); !errors.Is(err, ErrLastTemplate) {
		t.Fatalf("expected ErrLastTemplate, got %v", err)
	}
}

func TestTemplateServiceActiveAlwaysValid(t *testing.T) {
	db := newTestDB(t)
	if err := EnsureDefaultTemplate(db, "missing.md"); err != nil {
		t.Fatalf("EnsureDefaultTemplate error: %v", err)
	}
	svc := newTemplateService(t, db)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateTemplateRequest{Name: "B", Content: "b"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	c, err := svc.Create(ctx, CreateTemplateRequest{Name: "C", Content: "c"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.SetActive(ctx, b.ID); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	// 删除激活模板后，激活指针必须仍指向一个存在的模板
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	active, err := svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive error: %v", err)
	}
	if active.ID == b.ID {
		t.Fatalf("active template still points at deleted id %d", b.ID)
	}
	if _, err := svc.Get(ctx, active.ID); err != nil {
		t.Fatalf("active template does not exist: %v", err)
	}

	// 继续删到只剩一个，最后一次删除被拒绝
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	remaining, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining template, got %d", len(remaining))
	}
	if err := svc.Delete(ctx, remaining[0].ID); !errors.Is(err, ErrLastTemplate) {
		t.Fatalf("expected ErrLastTemplate, got %v", err)
	}

	active, err = svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive error: %v", err)
	}
	if active.ID != remaining[0].ID {
		t.Fatalf("expected active to resolve to the remaining template")
	}
}

func TestTemplateServiceSetActiveUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTemplateService(t, db)

	if err := svc.SetActive(context.Background(), 123); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
