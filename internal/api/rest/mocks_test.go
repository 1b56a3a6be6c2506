package rest_test

import (
	"context"
	"time"

	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/resolver"
)

// MockResolver is a mock implementation of the Resolver interface
type MockResolver struct {
	ResolveFunc       func(ctx context.Context, query string) (*resolver.Resolution, error)
	ResolveRecentFunc func(ctx context.Context, query string, limit int64) (*resolver.Resolution, error)
}

func (m *MockResolver) Resolve(ctx context.Context, query string) (*resolver.Resolution, error) {
	return m.ResolveFunc(ctx, query)
}

func (m *MockResolver) ResolveRecent(ctx context.Context, query string, limit int64) (*resolver.Resolution, error) {
	return m.ResolveRecentFunc(ctx, query, limit)
}

// MockBlog is a mock implementation of the blog post Generator interface
type MockBlog struct {
	GenerateFunc func(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error)
}

func (m *MockBlog) Generate(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error) {
	return m.GenerateFunc(ctx, youtubeURL)
}

// MockFeedGenerator is a mock implementation of the FeedGenerator interface
type MockFeedGenerator struct {
	GenerateFunc func(res *resolver.Resolution, params *entity.FeedParams) ([]byte, error)
}

func (m *MockFeedGenerator) Generate(res *resolver.Resolution, params *entity.FeedParams) ([]byte, error) {
	return m.GenerateFunc(res, params)
}

// MockCache is a mock implementation of the Cache interface
type MockCache struct {
	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	return m.GetFunc(ctx, key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.SetFunc(ctx, key, value, ttl)
}

func (m *MockCache) Close() error {
	return nil
}
