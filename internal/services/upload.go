package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"pixdrop/internal/domain"
)

// UploaderConfig carries the upload pipeline's environment-derived settings.
type UploaderConfig struct {
	// DefaultFolderID is the fallback target when no override and no event
	// folder resolve.
	DefaultFolderID string
	// MakePublic grants public read on stored files; a grant failure never
	// fails the upload.
	MakePublic bool
	// TmpDir overrides the staging directory. Empty means the OS temp dir.
	TmpDir string
}

type uploadService struct {
	storage        domain.FileStorage
	registry       domain.EventRegistry
	cfg            UploaderConfig
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewUploadService returns the per-request upload pipeline.
func NewUploadService(storage domain.FileStorage, registry domain.EventRegistry, cfg UploaderConfig, logger *slog.Logger, timeout time.Duration) domain.Uploader {
	return &uploadService{
		storage:        storage,
		registry:       registry,
		cfg:            cfg,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// tmpNameUnsafe matches everything that may not appear in a staged filename.
var tmpNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Stage consumes the whole multipart body: the first file part is streamed
// to a temp file while form fields are collected, and field values are only
// authoritative once the body is fully read. Additional file parts are
// drained and discarded. On any failure, including receiving no file or an
// empty file, nothing is left on disk.
func (s *uploadService) Stage(reader *multipart.Reader) (*domain.UploadItem, error) {
	var (
		tmpPath     string
		filename    string
		contentType = "application/octet-stream"
		size        int64
		fields      domain.UploadFields
	)
	fail := func(err error) (*domain.UploadItem, error) {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
		return nil, err
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("parse multipart: %w", err))
		}

		if part.FileName() == "" {
			val, err := io.ReadAll(part)
			if err != nil {
				return fail(fmt.Errorf("read field %s: %w", part.FormName(), err))
			}
			setField(&fields, part.FormName(), string(val))
			continue
		}

		if tmpPath != "" {
			// Only the first file part is staged.
			_, _ = io.Copy(io.Discard, part)
			continue
		}

		filename = part.FileName()
		if ct := part.Header.Get("Content-Type"); ct != "" {
			contentType = ct
		}
		tmpPath = filepath.Join(s.tmpDir(), fmt.Sprintf("%d-%s",
			time.Now().UnixNano(), tmpNameUnsafe.ReplaceAllString(filename, "_")))

		dst, err := os.Create(tmpPath)
		if err != nil {
			return fail(fmt.Errorf("create temp file: %w", err))
		}
		n, copyErr := io.Copy(dst, part)
		closeErr := dst.Close()
		if copyErr != nil {
			return fail(fmt.Errorf("stage upload: %w", copyErr))
		}
		if closeErr != nil {
			return fail(fmt.Errorf("stage upload: %w", closeErr))
		}
		size = n
	}

	if tmpPath == "" || size == 0 {
		return fail(domain.ErrNoFileReceived)
	}
	return &domain.UploadItem{
		TempPath:     tmpPath,
		OriginalName: filename,
		ContentType:  contentType,
		Size:         size,
		Fields:       fields,
	}, nil
}

func (s *uploadService) tmpDir() string {
	if s.cfg.TmpDir != "" {
		return s.cfg.TmpDir
	}
	return os.TempDir()
}

func setField(f *domain.UploadFields, name, value string) {
	switch name {
	case "folderId":
		f.FolderID = value
	case "eventFolderId":
		f.EventFolderID = value
	case "eventName":
		f.EventName = value
	case "weddingCode":
		f.WeddingCode = value
	case "uploaderName":
		f.UploaderName = value
	}
}

// Upload resolves the target folder, derives the canonical filename, and
// streams the staged bytes to the provider. The caller owns item and must
// Discard it on every exit path; Upload never deletes the staged file itself
// so a retry on a transient provider error remains possible.
func (s *uploadService) Upload(ctx context.Context, item *domain.UploadItem) (*domain.StoredFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	folderID, err := s.resolveFolder(ctx, item.Fields)
	if err != nil {
		return nil, err
	}

	src, err := os.Open(item.TempPath)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	defer src.Close()

	stored, err := s.storage.UploadFile(ctx, folderID, item.CanonicalName(), item.ContentType, src)
	if err != nil {
		return nil, fmt.Errorf("drive upload: %w", err)
	}

	if s.cfg.MakePublic {
		if err := s.storage.AllowPublicRead(ctx, stored.ID); err != nil {
			// The file is already safely stored; a failed grant is not a
			// failed upload.
			s.logger.WarnContext(ctx, "could not set public permission", "fileId", stored.ID, "err", err)
		}
	}
	return stored, nil
}

// resolveFolder picks the upload target: explicit override first, then the
// event's folder via registry lookup, then the configured default.
func (s *uploadService) resolveFolder(ctx context.Context, f domain.UploadFields) (string, error) {
	if f.FolderID != "" {
		return f.FolderID, nil
	}
	if f.EventFolderID != "" {
		return f.EventFolderID, nil
	}
	for _, ident := range []string{f.EventName, f.WeddingCode} {
		if ident == "" {
			continue
		}
		event, err := s.registry.FindByIdentifier(ctx, ident)
		if err == nil && event.FolderID != "" {
			return event.FolderID, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "event lookup failed, falling back to default folder", "identifier", ident, "err", err)
		}
	}
	if s.cfg.DefaultFolderID != "" {
		return s.cfg.DefaultFolderID, nil
	}
	return "", domain.ErrNoFolderConfigured
}
