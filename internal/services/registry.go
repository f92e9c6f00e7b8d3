package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"pixdrop/internal/domain"
)

// RegistryConfig carries the registry's environment-derived settings.
type RegistryConfig struct {
	// DefaultFolderID is the shared fallback folder; it doubles as the parent
	// for per-event folders.
	DefaultFolderID string
	// PublicBaseURL is used to build the public event link.
	PublicBaseURL string
	// FolderProvisioning gates folder creation on whether storage credentials
	// are actually available.
	FolderProvisioning bool
}

type eventRegistry struct {
	store          domain.EventStore
	resolver       domain.FolderResolver
	cfg            RegistryConfig
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventRegistry returns the business-logic layer over the event store.
func NewEventRegistry(store domain.EventStore, resolver domain.FolderResolver, cfg RegistryConfig, logger *slog.Logger, timeout time.Duration) domain.EventRegistry {
	return &eventRegistry{
		store:          store,
		resolver:       resolver,
		cfg:            cfg,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Create registers a new event. The name must be unique case-insensitively,
// and a name whose slug collides with an existing event's slug is rejected
// as a duplicate too, so slug lookups stay unambiguous. Folder provisioning
// is best-effort: on any resolver failure the event still exists, pointed at
// the default folder.
func (s *eventRegistry) Create(ctx context.Context, name string, wantFolder bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	events, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	slug := domain.Slugify(name)
	for _, e := range events {
		if strings.EqualFold(e.Name, name) {
			return nil, domain.ErrDuplicateName
		}
		if slug != "" && (e.Slug == slug || domain.Slugify(e.Name) == slug) {
			return nil, domain.ErrDuplicateName
		}
	}

	folderID := s.cfg.DefaultFolderID
	folderLink := ""
	if wantFolder && s.cfg.FolderProvisioning {
		ref, err := s.resolver.Resolve(ctx, name, s.cfg.DefaultFolderID)
		if err != nil {
			s.logger.WarnContext(ctx, "folder provisioning failed, using default folder", "event", name, "err", err)
		} else {
			folderID = ref.ID
			folderLink = ref.WebViewLink
		}
	}

	now := time.Now()
	event := &domain.Event{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		Name:            name,
		Slug:            slug,
		FolderID:        folderID,
		FolderLink:      folderLink,
		Link:            s.eventLink(slug),
		HasCustomFolder: folderID != s.cfg.DefaultFolderID,
		CreatedAt:       now.UTC(),
	}

	events = append(events, event)
	if err := s.store.Save(ctx, events); err != nil {
		return nil, fmt.Errorf("save events: %w", err)
	}
	return event, nil
}

func (s *eventRegistry) eventLink(slug string) string {
	host := strings.TrimPrefix(s.cfg.PublicBaseURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	return host + "/event/" + slug
}

// List returns all events. A store failure degrades to an empty listing so
// the public site keeps rendering.
func (s *eventRegistry) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load events failed, returning empty list", "err", err)
		return []*domain.Event{}, nil
	}
	return events, nil
}

// FindByIdentifier resolves an event by exact name (case-insensitive), then
// by stored slug, then by the slug derived from the stored name. The last
// form keeps records created before slugs existed resolvable.
func (s *eventRegistry) FindByIdentifier(ctx context.Context, identifier string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ident := strings.ToLower(strings.TrimSpace(identifier))
	if ident == "" {
		return nil, domain.ErrInvalidInput
	}

	events, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	for _, e := range events {
		if strings.ToLower(e.Name) == ident {
			return e, nil
		}
	}
	for _, e := range events {
		if e.Slug != "" && e.Slug == ident {
			return e, nil
		}
	}
	for _, e := range events {
		if derived := domain.Slugify(e.Name); derived != "" && derived == ident {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes the event with the given id permanently.
func (s *eventRegistry) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	kept := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return domain.ErrNotFound
	}
	if err := s.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
