package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploaderWritesObject(t *testing.T) {
	root := t.TempDir()
	u := NewLocalUploader(root)

	content := []byte(`{"a":1}` + "\n" + `{"a":2}`)
	resp, err := u.PutObject(context.Background(), NewJSONRequest("tenancy", "bucket", "2024/01/01/f_1.json", content))
	require.NoError(t, err)

	want := filepath.Join(root, "tenancy", "bucket", "2024", "01", "01", "f_1.json")
	assert.Equal(t, want, resp.Location)
	assert.EqualValues(t, len(content), resp.Size)

	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalUploaderRejectsInvalidRequests(t *testing.T) {
	u := NewLocalUploader(t.TempDir())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *PutObjectRequest
	}{
		{"nil", nil},
		{"no bucket", NewJSONRequest("ns", "", "a.json", nil)},
		{"no object", NewJSONRequest("ns", "b", "", nil)},
		{"escape", NewJSONRequest("ns", "b", "../../x.json", []byte("x"))},
		{"parent only", NewJSONRequest("ns", "b", "..", []byte("x"))},
		{"escape after clean", NewJSONRequest("ns", "b", "a/../../x.json", []byte("x"))},
		{"length mismatch", &PutObjectRequest{Bucket: "b", ObjectName: "a", Content: []byte("abc"), ContentLength: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.PutObject(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
		})
	}
}

func TestLocalUploaderAcceptsDotPrefixedNames(t *testing.T) {
	root := t.TempDir()
	u := NewLocalUploader(root)

	for _, name := range []string{"..data.json", "2024/..hidden/f.json", "a/../b.json"} {
		t.Run(name, func(t *testing.T) {
			resp, err := u.PutObject(context.Background(), NewJSONRequest("ns", "b", name, []byte("x")))
			require.NoError(t, err)

			want := filepath.Join(root, "ns", "b", filepath.FromSlash(name))
			assert.Equal(t, want, resp.Location)
			assert.FileExists(t, want)
		})
	}
}

func TestLocalUploaderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalUploader(t.TempDir()).PutObject(ctx, NewJSONRequest("ns", "b", "a.json", []byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
}
