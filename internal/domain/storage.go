package domain

import (
	"context"
	"io"
)

// FolderRef identifies a provider-side folder.
type FolderRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"webViewLink"`
}

// StoredFile is the provider's metadata for a persisted upload.
type StoredFile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WebViewLink    string `json:"webViewLink"`
	WebContentLink string `json:"webContentLink"`
}

// Photo is one image in a folder listing.
type Photo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	WebViewLink   string `json:"webViewLink"`
	ThumbnailLink string `json:"thumbnailLink"`
	DirectLink    string `json:"directLink"`
	CreatedTime   string `json:"createdTime"`
}

// FileStorage is the external file-storage provider contract. All calls can
// fail with provider errors (network, quota, permission); callers decide
// whether to fall back or propagate.
type FileStorage interface {
	// FindFolder returns the folder named exactly name under parentID, or
	// ErrNotFound when no such folder exists.
	FindFolder(ctx context.Context, name, parentID string) (*FolderRef, error)
	CreateFolder(ctx context.Context, name, parentID string) (*FolderRef, error)
	UploadFile(ctx context.Context, folderID, name, contentType string, content io.Reader) (*StoredFile, error)
	// AllowPublicRead grants anyone read access to the stored file.
	AllowPublicRead(ctx context.Context, fileID string) error
	ListImages(ctx context.Context, folderID string) ([]*Photo, error)
}

// FolderResolver finds or creates the provider folder for an event name
// under a parent folder. Resolving the same pair twice yields the same
// folder, which keeps event creation idempotent under client retries.
type FolderResolver interface {
	Resolve(ctx context.Context, eventName, parentFolderID string) (*FolderRef, error)
}
