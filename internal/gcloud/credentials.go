// Package gcloud resolves Google Cloud credentials for the API clients.
package gcloud

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ErrMissingCredentials is returned when no Google Cloud credentials can be found.
var ErrMissingCredentials = errors.New("missing Google Cloud credentials")

// CredentialsFromEnv returns a client option carrying credentials for scopes.
// It reads GOOGLE_CREDENTIALS (inline JSON), then GOOGLE_APPLICATION_CREDENTIALS
// (file path), then falls back to application default credentials.
func CredentialsFromEnv(ctx context.Context, scopes ...string) (option.ClientOption, error) {
	var (
		data []byte
		err  error
	)
	if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		data = []byte(credsJSON)
	} else if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		data, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	}

	if data != nil {
		creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		return option.WithCredentials(creds), nil
	}

	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	return option.WithCredentials(creds), nil
}
