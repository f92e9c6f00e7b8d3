package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Event represents one organizer-defined photo collection. Guests upload
// into the folder it points at.
type Event struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Slug is the public lookup key, derived from Name at creation and never
	// independently settable.
	Slug string `json:"slug"`
	// FolderID is never empty once the event exists: either the event's own
	// provider folder or the configured default.
	FolderID        string    `json:"folderId"`
	FolderLink      string    `json:"folderLink"`
	Link            string    `json:"link"`
	HasCustomFolder bool      `json:"hasCustomFolder"`
	CreatedAt       time.Time `json:"createdAt"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]`)

// Slugify derives the URL-safe lookup key for an event name: lower-cased,
// trimmed, with everything outside [a-z0-9] removed.
func Slugify(name string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
}

// EventStore is the durable mapping from event identity to event metadata,
// kept as one collection under a single key in a shared key-value store.
//
// Load and Save go back to the store on every call; no in-process state
// survives between requests. A Load-mutate-Save cycle is not atomic: two
// concurrent writers race and the last Save wins for the whole collection.
// Creation and deletion are low-frequency admin actions, so this is accepted
// rather than papered over.
type EventStore interface {
	// Load returns all events, or an empty slice if the key was never written.
	Load(ctx context.Context) ([]*Event, error)
	// Save replaces the whole collection.
	Save(ctx context.Context, events []*Event) error
}

// EventRegistry is the business logic over the store: uniqueness, slug
// derivation, folder provisioning, and lookups.
type EventRegistry interface {
	Create(ctx context.Context, name string, wantFolder bool) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	FindByIdentifier(ctx context.Context, identifier string) (*Event, error)
	Delete(ctx context.Context, id string) error
}
