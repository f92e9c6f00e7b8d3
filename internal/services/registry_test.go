package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixdrop/internal/domain"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventStore is an in-memory EventStore for tests.
type fakeEventStore struct {
	events    []*domain.Event
	loadErr   error
	saveErr   error
	saveCalls int
}

func (f *fakeEventStore) Load(ctx context.Context) ([]*domain.Event, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]*domain.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeEventStore) Save(ctx context.Context, events []*domain.Event) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.events = events
	return nil
}

// fakeResolver returns a fixed folder or error and records calls.
type fakeResolver struct {
	ref   *domain.FolderRef
	err   error
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, eventName, parentFolderID string) (*domain.FolderRef, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ref, nil
}

func newTestRegistry(store *fakeEventStore, resolver *fakeResolver, provisioning bool) domain.EventRegistry {
	return NewEventRegistry(store, resolver, RegistryConfig{
		DefaultFolderID:    "default-folder",
		PublicBaseURL:      "https://www.pixdrop.cloud",
		FolderProvisioning: provisioning,
	}, testLogger, 5*time.Second)
}

func TestEventRegistry_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with custom folder", func(t *testing.T) {
		store := &fakeEventStore{}
		resolver := &fakeResolver{ref: &domain.FolderRef{
			ID:          "folder-1",
			Name:        "Jane & Tom",
			WebViewLink: "https://drive.google.com/drive/folders/folder-1",
		}}
		registry := newTestRegistry(store, resolver, true)

		event, err := registry.Create(ctx, "Jane & Tom", true)
		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Jane & Tom", event.Name)
		assert.Equal(t, "janetom", event.Slug)
		assert.Equal(t, "folder-1", event.FolderID)
		assert.Equal(t, "https://drive.google.com/drive/folders/folder-1", event.FolderLink)
		assert.Equal(t, "www.pixdrop.cloud/event/janetom", event.Link)
		assert.True(t, event.HasCustomFolder)
		assert.False(t, event.CreatedAt.IsZero())
		require.Len(t, store.events, 1)
	})

	t.Run("trims the name", func(t *testing.T) {
		store := &fakeEventStore{}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		event, err := registry.Create(ctx, "  Summer Party  ", false)
		require.NoError(t, err)
		assert.Equal(t, "Summer Party", event.Name)
		assert.Equal(t, "summerparty", event.Slug)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		registry := newTestRegistry(&fakeEventStore{}, &fakeResolver{}, false)
		_, err := registry.Create(ctx, "   ", false)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("resolver failure falls back to default folder", func(t *testing.T) {
		store := &fakeEventStore{}
		resolver := &fakeResolver{err: errors.New("quota exceeded")}
		registry := newTestRegistry(store, resolver, true)

		event, err := registry.Create(ctx, "Jane & Tom", true)
		require.NoError(t, err)
		assert.Equal(t, "default-folder", event.FolderID)
		assert.Empty(t, event.FolderLink)
		assert.False(t, event.HasCustomFolder)
		require.Len(t, store.events, 1)
	})

	t.Run("wantFolder false skips the resolver", func(t *testing.T) {
		resolver := &fakeResolver{ref: &domain.FolderRef{ID: "folder-1"}}
		registry := newTestRegistry(&fakeEventStore{}, resolver, true)

		event, err := registry.Create(ctx, "No Folder Please", false)
		require.NoError(t, err)
		assert.Zero(t, resolver.calls)
		assert.Equal(t, "default-folder", event.FolderID)
		assert.False(t, event.HasCustomFolder)
	})

	t.Run("no credentials skips the resolver", func(t *testing.T) {
		resolver := &fakeResolver{ref: &domain.FolderRef{ID: "folder-1"}}
		registry := newTestRegistry(&fakeEventStore{}, resolver, false)

		event, err := registry.Create(ctx, "Offline Event", true)
		require.NoError(t, err)
		assert.Zero(t, resolver.calls)
		assert.Equal(t, "default-folder", event.FolderID)
	})

	t.Run("store load failure propagates", func(t *testing.T) {
		store := &fakeEventStore{loadErr: domain.ErrStoreUnavailable}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		_, err := registry.Create(ctx, "Jane & Tom", false)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Zero(t, store.saveCalls)
	})

	t.Run("store save failure propagates", func(t *testing.T) {
		store := &fakeEventStore{saveErr: domain.ErrStoreUnavailable}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		_, err := registry.Create(ctx, "Jane & Tom", false)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestEventRegistry_Create_Duplicates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"exact name", "Jane & Tom", "Jane & Tom"},
		{"case-insensitive name", "Jane & Tom", "JANE & tom"},
		{"case-insensitive reversed order", "JANE & TOM", "jane & tom"},
		{"slug collision", "Jane & Tom", "Jane+Tom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeEventStore{}
			registry := newTestRegistry(store, &fakeResolver{}, false)

			_, err := registry.Create(ctx, tt.first, false)
			require.NoError(t, err)

			_, err = registry.Create(ctx, tt.second, false)
			require.ErrorIs(t, err, domain.ErrDuplicateName)
			assert.Len(t, store.events, 1)
		})
	}
}

func TestEventRegistry_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passthrough", func(t *testing.T) {
		store := &fakeEventStore{events: []*domain.Event{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		events, err := registry.List(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("store failure degrades to empty", func(t *testing.T) {
		store := &fakeEventStore{loadErr: domain.ErrStoreUnavailable}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		events, err := registry.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestEventRegistry_FindByIdentifier(t *testing.T) {
	ctx := context.Background()

	// An event created with only a name, as records predating slugs were.
	store := &fakeEventStore{events: []*domain.Event{
		{ID: "1", Name: "Jane & Tom", Slug: "janetom", FolderID: "folder-1"},
		{ID: "2", Name: "Old Event", FolderID: "folder-2"},
	}}
	registry := newTestRegistry(store, &fakeResolver{}, false)

	tests := []struct {
		name       string
		identifier string
		wantID     string
		wantErr    error
	}{
		{"exact name", "Jane & Tom", "1", nil},
		{"case-insensitive name", "jane & tom", "1", nil},
		{"stored slug", "janetom", "1", nil},
		{"name-derived slug for record without slug", "oldevent", "2", nil},
		{"unknown identifier", "nosuchevent", "", domain.ErrNotFound},
		{"blank identifier", "  ", "", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := registry.FindByIdentifier(ctx, tt.identifier)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, event.ID)
		})
	}
}

func TestEventRegistry_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the event", func(t *testing.T) {
		store := &fakeEventStore{events: []*domain.Event{{ID: "1"}, {ID: "2"}}}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		require.NoError(t, registry.Delete(ctx, "1"))
		require.Len(t, store.events, 1)
		assert.Equal(t, "2", store.events[0].ID)
	})

	t.Run("missing id leaves the store unchanged", func(t *testing.T) {
		store := &fakeEventStore{events: []*domain.Event{{ID: "1"}}}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		err := registry.Delete(ctx, "does-not-exist")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, store.saveCalls)
		assert.Len(t, store.events, 1)
	})

	t.Run("store load failure propagates", func(t *testing.T) {
		store := &fakeEventStore{loadErr: domain.ErrStoreUnavailable}
		registry := newTestRegistry(store, &fakeResolver{}, false)

		require.ErrorIs(t, registry.Delete(ctx, "1"), domain.ErrStoreUnavailable)
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane & Tom", "janetom"},
		{"  Summer Party 2026  ", "summerparty2026"},
		{"already-lower", "alreadylower"},
		{"ALLCAPS", "allcaps"},
		{"&&&", ""},
	}
	for _, tt := range tests {
		got := domain.Slugify(tt.in)
		assert.Equal(t, tt.want, got, "Slugify(%q)", tt.in)
		// Idempotent: slugifying a slug changes nothing.
		assert.Equal(t, got, domain.Slugify(got))
		assert.NotRegexp(t, `[^a-z0-9]`, got)
	}
}
