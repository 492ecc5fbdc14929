package gcloud

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authorizedUser = `{"type":"authorized_user","client_id":"id","client_secret":"secret","refresh_token":"token"}`

func TestCredentialsFromInlineJSON(t *testing.T) {
	t.Setenv("GOOGLE_CREDENTIALS", authorizedUser)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

	opt, err := CredentialsFromEnv(context.Background(), "https://www.googleapis.com/auth/devstorage.read_write")
	require.NoError(t, err)
	assert.NotNil(t, opt)
}

func TestCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte(authorizedUser), 0o600))
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)

	opt, err := CredentialsFromEnv(context.Background(), "https://www.googleapis.com/auth/spreadsheets")
	require.NoError(t, err)
	assert.NotNil(t, opt)
}

func TestCredentialsErrors(t *testing.T) {
	t.Run("unreadable file", func(t *testing.T) {
		t.Setenv("GOOGLE_CREDENTIALS", "")
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

		_, err := CredentialsFromEnv(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read credentials file")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Setenv("GOOGLE_CREDENTIALS", "{not json")

		_, err := CredentialsFromEnv(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse credentials")
		assert.NotErrorIs(t, err, ErrMissingCredentials)
	})
}
