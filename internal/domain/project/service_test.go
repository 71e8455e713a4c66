package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/rgould/proofdesk/internal/domain/project"
	"github.com/rgould/proofdesk/internal/export/latex"
	"github.com/rgould/proofdesk/internal/store"
	"github.com/rgould/proofdesk/internal/store/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_CreateValidation(t *testing.T) {
	docs := &mocks.DocumentStore{}
	svc := project.NewService(docs, nil)

	_, _, err := svc.Create(context.Background(), "  ", "Title")
	require.ErrorIs(t, err, project.ErrInvalidInput)
	docs.AssertNotCalled(t, "Create")
}

func TestService_CreateDefaultsTitle(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	doc := document.New("p1", "Untitled", time.Now())
	docs.On("Create", ctx, "p1", "Untitled").Return(doc, "etag-1", nil)

	svc := project.NewService(docs, nil)
	got, etag, err := svc.Create(ctx, "p1", "")
	require.NoError(t, err)
	require.Equal(t, "etag-1", etag)
	require.Equal(t, "Untitled", got.Title)
}

func TestService_CreateCollision(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	docs.On("Create", ctx, "p1", "Title").Return(nil, "", store.ErrAlreadyExists)

	svc := project.NewService(docs, nil)
	_, _, err := svc.Create(ctx, "p1", "Title")
	require.ErrorIs(t, err, project.ErrProjectExists)
}

func TestService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	docs.On("Get", ctx, "ghost").Return(nil, "", store.ErrNotFound)

	svc := project.NewService(docs, nil)
	_, _, err := svc.Get(ctx, "ghost")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestService_SaveValidation(t *testing.T) {
	docs := &mocks.DocumentStore{}
	svc := project.NewService(docs, nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, nil, "etag")
	require.ErrorIs(t, err, project.ErrInvalidInput)

	doc := document.New("", "Title", time.Now())
	_, err = svc.Save(ctx, doc, "etag")
	require.ErrorIs(t, err, project.ErrInvalidInput)

	doc = document.New("p1", "Title", time.Now())
	_, err = svc.Save(ctx, doc, "")
	require.ErrorIs(t, err, project.ErrInvalidInput)
	docs.AssertNotCalled(t, "Save")
}

func TestService_SaveStaleEtag(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	docs.On("Save", ctx, mock.Anything, "old-etag").Return("", store.ErrStaleEtag)

	svc := project.NewService(docs, nil)
	doc := document.New("p1", "Title", time.Now())
	_, err := svc.Save(ctx, doc, "old-etag")
	require.ErrorIs(t, err, project.ErrStaleEtag)
}

func TestService_ExportNotFound(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	docs.On("Get", ctx, "ghost").Return(nil, "", store.ErrNotFound)

	svc := project.NewService(docs, nil)
	_, _, err := svc.Export(ctx, "ghost", latex.Options{})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestService_ExportBundlesDocument(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	doc := document.New("p1", "Title", time.Now())
	docs.On("Get", ctx, "p1").Return(doc, "etag-1", nil)

	svc := project.NewService(docs, nil)
	filename, data, err := svc.Export(ctx, "p1", latex.Options{})
	require.NoError(t, err)
	require.Equal(t, "p1_bundle.zip", filename)
	require.NotEmpty(t, data)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	summaries := []document.Summary{{ID: "a", Title: "A", UpdatedAt: time.Now()}}
	docs.On("List", ctx).Return(summaries, nil)

	svc := project.NewService(docs, nil)
	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, summaries, got)
}
