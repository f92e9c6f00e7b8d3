package domain

import (
	"context"
	"mime/multipart"
	"os"
	"strings"
)

// UploadFields are the recognized form fields of an upload request. Anything
// else in the form is ignored.
type UploadFields struct {
	FolderID      string
	EventFolderID string
	EventName     string
	WeddingCode   string
	UploaderName  string
}

// UploadItem is one file mid-flight: staged to a local temp file with its
// form fields fully collected. It lives for a single request; Discard must
// run on every exit path.
type UploadItem struct {
	TempPath     string
	OriginalName string
	ContentType  string
	Size         int64
	Fields       UploadFields
}

// CanonicalName returns the provider-side filename: the non-empty naming
// prefixes (event/wedding code, then uploader) joined with "_", followed by
// the original filename.
func (i *UploadItem) CanonicalName() string {
	var parts []string
	if code := i.Fields.WeddingCode; code != "" {
		parts = append(parts, code)
	} else if i.Fields.EventName != "" {
		parts = append(parts, i.Fields.EventName)
	}
	if i.Fields.UploaderName != "" {
		parts = append(parts, i.Fields.UploaderName)
	}
	if len(parts) == 0 {
		return i.OriginalName
	}
	return strings.Join(parts, "_") + "_" + i.OriginalName
}

// Discard releases the staged bytes. Safe to call more than once.
func (i *UploadItem) Discard() {
	if i == nil || i.TempPath == "" {
		return
	}
	_ = os.Remove(i.TempPath)
	i.TempPath = ""
}

// Uploader runs the upload pipeline. Stage collects the whole multipart body
// (file streamed to disk, fields gathered) before any decision is made;
// Upload resolves the target folder, names the file, and pushes it to the
// provider.
type Uploader interface {
	Stage(reader *multipart.Reader) (*UploadItem, error)
	Upload(ctx context.Context, item *UploadItem) (*StoredFile, error)
}
