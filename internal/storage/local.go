package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalUploader writes objects to <root>/<namespace>/<bucket>/<object name>.
// Object metadata is not persisted.
type LocalUploader struct {
	root string
}

// NewLocalUploader returns an uploader writing below root.
func NewLocalUploader(root string) *LocalUploader {
	return &LocalUploader{root: root}
}

// PutObject writes req.Content, replacing any existing file.
func (u *LocalUploader) PutObject(ctx context.Context, req *PutObjectRequest) (*PutObjectResponse, error) {
	const op = "PutObject"

	if err := req.validate(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, WrapStorageError(op, err, "")
	}

	dir := filepath.Join(u.root, req.Namespace, req.Bucket)
	path := filepath.Join(dir, filepath.FromSlash(req.ObjectName))
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, WrapStorageError(op, ErrInvalidRequest, "object name escapes the bucket directory: "+req.ObjectName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, WrapStorageError(op, err, "failed to create directory")
	}
	if err := os.WriteFile(path, req.Content, 0o644); err != nil {
		return nil, WrapStorageError(op, err, "failed to write file")
	}

	return &PutObjectResponse{
		Location: path,
		Size:     req.ContentLength,
		StoredAt: time.Now(),
	}, nil
}
