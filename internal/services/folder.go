package services

import (
	"context"
	"errors"
	"fmt"

	"pixdrop/internal/domain"
)

type folderResolver struct {
	storage domain.FileStorage
}

// NewFolderResolver returns a resolver that finds an existing provider
// folder by exact name under the parent before creating one. The lookup step
// is what keeps event creation idempotent when a client double-submits.
func NewFolderResolver(storage domain.FileStorage) domain.FolderResolver {
	return &folderResolver{storage: storage}
}

func (r *folderResolver) Resolve(ctx context.Context, eventName, parentFolderID string) (*domain.FolderRef, error) {
	existing, err := r.storage.FindFolder(ctx, eventName, parentFolderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find folder: %w", err)
	}
	created, err := r.storage.CreateFolder(ctx, eventName, parentFolderID)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return created, nil
}
