package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"pixdrop/internal/domain"
)

const folderMimeType = "application/vnd.google-apps.folder"

// photoPageSize limits folder listings to the most recent photos.
const photoPageSize = 50

type driveStorage struct {
	svc *drive.Service
}

// NewStorage wraps an authorized Drive service as domain.FileStorage.
func NewStorage(svc *drive.Service) domain.FileStorage {
	return &driveStorage{svc: svc}
}

// escapeQueryTerm escapes a value for use inside single quotes in a Drive
// query expression.
func escapeQueryTerm(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// folderQuery matches folders named exactly name whose parent is parentID.
func folderQuery(name, parentID string) string {
	return fmt.Sprintf("name='%s' and '%s' in parents and mimeType='%s'",
		escapeQueryTerm(name), escapeQueryTerm(parentID), folderMimeType)
}

func (s *driveStorage) FindFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	list, err := s.svc.Files.List().
		Context(ctx).
		Q(folderQuery(name, parentID)).
		Fields("files(id,name,webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if len(list.Files) == 0 {
		return nil, domain.ErrNotFound
	}
	f := list.Files[0]
	return &domain.FolderRef{ID: f.Id, Name: f.Name, WebViewLink: f.WebViewLink}, nil
}

func (s *driveStorage) CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	created, err := s.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).
		Context(ctx).
		Fields("id,name,webViewLink").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return &domain.FolderRef{ID: created.Id, Name: created.Name, WebViewLink: created.WebViewLink}, nil
}

func (s *driveStorage) UploadFile(ctx context.Context, folderID, name, contentType string, content io.Reader) (*domain.StoredFile, error) {
	created, err := s.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).
		Context(ctx).
		Media(content, googleapi.ContentType(contentType)).
		Fields("id,name,webViewLink,webContentLink").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return &domain.StoredFile{
		ID:             created.Id,
		Name:           created.Name,
		WebViewLink:    created.WebViewLink,
		WebContentLink: created.WebContentLink,
	}, nil
}

func (s *driveStorage) AllowPublicRead(ctx context.Context, fileID string) error {
	_, err := s.svc.Permissions.Create(fileID, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).
		Context(ctx).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return fmt.Errorf("set public permission: %w", err)
	}
	return nil
}

func (s *driveStorage) ListImages(ctx context.Context, folderID string) ([]*domain.Photo, error) {
	q := fmt.Sprintf("'%s' in parents and trashed=false and (mimeType contains 'image/')", escapeQueryTerm(folderID))
	list, err := s.svc.Files.List().
		Context(ctx).
		Q(q).
		Fields("files(id,name,mimeType,webViewLink,webContentLink,thumbnailLink,createdTime)").
		OrderBy("createdTime desc").
		PageSize(photoPageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	photos := make([]*domain.Photo, 0, len(list.Files))
	for _, f := range list.Files {
		photos = append(photos, &domain.Photo{
			ID:            f.Id,
			Name:          f.Name,
			MimeType:      f.MimeType,
			WebViewLink:   f.WebViewLink,
			ThumbnailLink: f.ThumbnailLink,
			DirectLink:    "https://drive.google.com/uc?id=" + f.Id,
			CreatedTime:   f.CreatedTime,
		})
	}
	return photos, nil
}

// unconfiguredStorage reports the missing-credentials error on every call.
type unconfiguredStorage struct {
	err error
}

func (u *unconfiguredStorage) FindFolder(context.Context, string, string) (*domain.FolderRef, error) {
	return nil, u.err
}

func (u *unconfiguredStorage) CreateFolder(context.Context, string, string) (*domain.FolderRef, error) {
	return nil, u.err
}

func (u *unconfiguredStorage) UploadFile(context.Context, string, string, string, io.Reader) (*domain.StoredFile, error) {
	return nil, u.err
}

func (u *unconfiguredStorage) AllowPublicRead(context.Context, string) error {
	return u.err
}

func (u *unconfiguredStorage) ListImages(context.Context, string) ([]*domain.Photo, error) {
	return nil, u.err
}
