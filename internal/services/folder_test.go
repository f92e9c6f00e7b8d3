package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixdrop/internal/domain"
)

// fakeStorage is an in-memory FileStorage that registers created folders so
// a second resolve finds them.
type fakeStorage struct {
	folders       map[string]*domain.FolderRef // name|parent -> folder
	nextFolder    int
	findErr       error
	createErr     error
	findCalls     int
	createCalls   int
	uploadErr     error
	uploadCalls   int
	lastFolderID  string
	lastName      string
	lastMimeType  string
	lastContent   []byte
	permErr       error
	permCalls     int
	lastPermFile  string
	listPhotosErr error
	photos        []*domain.Photo
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{folders: make(map[string]*domain.FolderRef), nextFolder: 1}
}

func folderKey(name, parentID string) string { return name + "|" + parentID }

func (f *fakeStorage) FindFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	if ref, ok := f.folders[folderKey(name, parentID)]; ok {
		return ref, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStorage) CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	ref := &domain.FolderRef{
		ID:          fmt.Sprintf("folder-%d", f.nextFolder),
		Name:        name,
		WebViewLink: fmt.Sprintf("https://drive.google.com/drive/folders/folder-%d", f.nextFolder),
	}
	f.nextFolder++
	f.folders[folderKey(name, parentID)] = ref
	return ref, nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, folderID, name, contentType string, content io.Reader) (*domain.StoredFile, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.lastFolderID = folderID
	f.lastName = name
	f.lastMimeType = contentType
	f.lastContent = data
	return &domain.StoredFile{
		ID:             "file-1",
		Name:           name,
		WebViewLink:    "https://drive.google.com/file/d/file-1/view",
		WebContentLink: "https://drive.google.com/uc?id=file-1",
	}, nil
}

func (f *fakeStorage) AllowPublicRead(ctx context.Context, fileID string) error {
	f.permCalls++
	f.lastPermFile = fileID
	return f.permErr
}

func (f *fakeStorage) ListImages(ctx context.Context, folderID string) ([]*domain.Photo, error) {
	if f.listPhotosErr != nil {
		return nil, f.listPhotosErr
	}
	return f.photos, nil
}

func TestFolderResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when absent", func(t *testing.T) {
		storage := newFakeStorage()
		resolver := NewFolderResolver(storage)

		ref, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.NoError(t, err)
		assert.Equal(t, "folder-1", ref.ID)
		assert.Equal(t, 1, storage.createCalls)
	})

	t.Run("reuses an existing folder", func(t *testing.T) {
		storage := newFakeStorage()
		existing, err := storage.CreateFolder(ctx, "Jane & Tom", "parent-1")
		require.NoError(t, err)
		storage.createCalls = 0

		resolver := NewFolderResolver(storage)
		ref, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, ref.ID)
		assert.Zero(t, storage.createCalls)
	})

	t.Run("idempotent across two resolves", func(t *testing.T) {
		storage := newFakeStorage()
		resolver := NewFolderResolver(storage)

		first, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, storage.createCalls)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		storage := newFakeStorage()
		storage.findErr = errors.New("permission denied")
		resolver := NewFolderResolver(storage)

		_, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.Error(t, err)
		assert.Zero(t, storage.createCalls)
	})

	t.Run("create failure propagates", func(t *testing.T) {
		storage := newFakeStorage()
		storage.createErr = errors.New("quota exceeded")
		resolver := NewFolderResolver(storage)

		_, err := resolver.Resolve(ctx, "Jane & Tom", "parent-1")
		require.Error(t, err)
	})
}
