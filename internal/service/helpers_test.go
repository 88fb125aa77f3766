package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"private-chat-go/internal/model"
	"private-chat-go/pkg/gemini"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// openTestDB 为每个测试打开一个独立的内存数据库并建表。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Chat{},
		&model.Folder{},
		&model.Message{},
		&model.Attachment{},
		&model.Setting{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeBlobRepo 是内存版的对象存储。failKeys 中的键在 Get 和 Delete 时报错，
// 用来模拟对象不可读或删除失败。
type fakeBlobRepo struct {
	objects  map[string][]byte
	failKeys map[string]bool
	deleted  []string
}

func newFakeBlobRepo() *fakeBlobRepo {
	return &fakeBlobRepo{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]bool),
	}
}

func (f *fakeBlobRepo) Put(ctx context.Context, key, mimeType string, reader io.Reader, size int64) error {
	_ = ctx
	_ = mimeType
	_ = size
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	if f.failKeys[key] {
		return nil, fmt.Errorf("object unavailable: %s", key)
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return data, nil
}

func (f *fakeBlobRepo) Delete(ctx context.Context, key string) error {
	_ = ctx
	if f.failKeys[key] {
		return fmt.Errorf("cannot remove object: %s", key)
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeGateway 记录最近一次调用收到的回合数组。
type fakeGateway struct {
	lastContents []gemini.Content
	lastAPIKey   string
	reply        string
	err          error
	calls        int
}

func (g *fakeGateway) GenerateContent(ctx context.Context, apiKey string, contents []gemini.Content) (string, error) {
	_ = ctx
	g.calls++
	g.lastAPIKey = apiKey
	// copy to avoid mutations
	g.lastContents = append([]gemini.Content(nil), contents...)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

// fakeSessionRepo 是内存版的会话存储。
type fakeSessionRepo struct {
	tokens map[string]bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: make(map[string]bool)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, token string) error {
	_ = ctx
	f.tokens[token] = true
	return nil
}

func (f *fakeSessionRepo) Exists(ctx context.Context, token string) (bool, error) {
	_ = ctx
	return f.tokens[token], nil
}
