package drive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeQueryTerm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Jane & Tom", "Jane & Tom"},
		{"single quote", "O'Brien's Party", `O\'Brien\'s Party`},
		{"backslash", `a\b`, `a\\b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, escapeQueryTerm(tt.in))
		})
	}
}

func TestFolderQuery(t *testing.T) {
	q := folderQuery("Jane's Wedding", "parent-1")
	require.Equal(t,
		`name='Jane\'s Wedding' and 'parent-1' in parents and mimeType='application/vnd.google-apps.folder'`,
		q)
}

func TestNewFileStorage_Unconfigured(t *testing.T) {
	ctx := context.Background()

	storage := NewFileStorage(ctx, Config{})
	_, err := storage.FindFolder(ctx, "any", "parent")
	require.ErrorIs(t, err, errNoCredentials)

	storage = NewFileStorage(ctx, Config{ClientID: "id", ClientSecret: "secret"})
	_, err = storage.UploadFile(ctx, "f", "n", "image/jpeg", nil)
	require.ErrorIs(t, err, errNoRefreshToken)
	require.ErrorIs(t, storage.AllowPublicRead(ctx, "x"), errNoRefreshToken)
}
