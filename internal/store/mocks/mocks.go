package mocks

import (
	"context"

	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for store.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Create(ctx context.Context, id, title string) (*document.Project, string, error) {
	args := m.Called(ctx, id, title)
	if doc, ok := args.Get(0).(*document.Project); ok {
		return doc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *DocumentStore) Get(ctx context.Context, id string) (*document.Project, string, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(*document.Project); ok {
		return doc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *DocumentStore) Save(ctx context.Context, doc *document.Project, etag string) (string, error) {
	args := m.Called(ctx, doc, etag)
	return args.String(0), args.Error(1)
}

func (m *DocumentStore) List(ctx context.Context) ([]document.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]document.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SettingsStore is a mock for store.SettingsStore.
type SettingsStore struct {
	mock.Mock
}

func (m *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingsStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *SettingsStore) All(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if all, ok := args.Get(0).(map[string]string); ok {
		return all, args.Error(1)
	}
	return nil, args.Error(1)
}
