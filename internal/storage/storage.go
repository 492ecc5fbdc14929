// Package storage uploads generated files to an object store.
//
// Two sinks are provided: GCSUploader writes to Google Cloud Storage through
// the JSON API, and LocalUploader writes below a local directory for offline
// runs. Both accept the same PutObjectRequest.
package storage

import (
	"context"
	"time"
)

// Object metadata sent with every generated file.
const (
	ContentTypeJSON       = "application/json"
	DispositionAttachment = "attachment"
	EncodingLZ4           = "lz4"
)

// Uploader stores one object per call.
type Uploader interface {
	PutObject(ctx context.Context, req *PutObjectRequest) (*PutObjectResponse, error)
}

// PutObjectRequest describes an object to store.
type PutObjectRequest struct {
	// Namespace scopes the request: the GCS user project, or the top-level
	// directory of a local sink.
	Namespace string

	// Bucket is the destination bucket.
	Bucket string

	// ObjectName is the full object name, which may contain slashes.
	ObjectName string

	// Content is the object body.
	Content []byte

	// ContentLength is len(Content).
	ContentLength int64

	// ContentType and ContentDisposition are stored as object metadata.
	ContentType        string
	ContentDisposition string

	// ContentEncoding is set when Content is compressed.
	ContentEncoding string
}

// NewJSONRequest returns a request with the fixed metadata used for
// generated invoice files.
func NewJSONRequest(namespace, bucket, objectName string, content []byte) *PutObjectRequest {
	return &PutObjectRequest{
		Namespace:          namespace,
		Bucket:             bucket,
		ObjectName:         objectName,
		Content:            content,
		ContentLength:      int64(len(content)),
		ContentType:        ContentTypeJSON,
		ContentDisposition: DispositionAttachment,
	}
}

func (r *PutObjectRequest) validate(op string) error {
	if r == nil {
		return WrapStorageError(op, ErrInvalidRequest, "nil request")
	}
	if r.Bucket == "" {
		return WrapStorageError(op, ErrInvalidRequest, "bucket is required")
	}
	if r.ObjectName == "" {
		return WrapStorageError(op, ErrInvalidRequest, "object name is required")
	}
	if r.ContentLength != int64(len(r.Content)) {
		return WrapStorageError(op, ErrInvalidRequest, "content length does not match content")
	}
	return nil
}

// PutObjectResponse describes a stored object.
type PutObjectResponse struct {
	// Location is a sink specific address of the object (gs:// URL or file path).
	Location string

	// Size is the stored size in bytes.
	Size int64

	// Generation is the GCS object generation; 0 for local files.
	Generation int64

	// ETag is the object entity tag when the sink provides one.
	ETag string

	// StoredAt is when the sink acknowledged the write.
	StoredAt time.Time
}
