package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"

	"invoicegen/internal/gcloud"
	"invoicegen/internal/logger"
)

// GCSUploader implements Uploader on Google Cloud Storage.
type GCSUploader struct {
	service *gcs.Service
	log     zerolog.Logger
}

// NewGCSUploader creates an uploader. Without options, credentials are taken
// from GOOGLE_CREDENTIALS (inline JSON), then GOOGLE_APPLICATION_CREDENTIALS
// (file path), then application default credentials.
func NewGCSUploader(ctx context.Context, opts ...option.ClientOption) (*GCSUploader, error) {
	const op = "NewGCSUploader"

	if len(opts) == 0 {
		credsOpt, err := gcloud.CredentialsFromEnv(ctx, gcs.DevstorageReadWriteScope)
		if err != nil {
			return nil, WrapStorageError(op, err, "failed to load credentials")
		}
		opts = append(opts, credsOpt)
	}

	service, err := gcs.NewService(ctx, opts...)
	if err != nil {
		return nil, WrapStorageError(op, err, "failed to create storage client")
	}

	return &GCSUploader{
		service: service,
		log:     logger.WithComponent("gcs"),
	}, nil
}

// PutObject uploads req.Content as a single object. The namespace, when
// set, is billed as the request's user project.
func (u *GCSUploader) PutObject(ctx context.Context, req *PutObjectRequest) (*PutObjectResponse, error) {
	const op = "PutObject"

	if err := req.validate(op); err != nil {
		return nil, err
	}

	obj := &gcs.Object{
		Name:               req.ObjectName,
		Bucket:             req.Bucket,
		ContentType:        req.ContentType,
		ContentDisposition: req.ContentDisposition,
		ContentEncoding:    req.ContentEncoding,
	}

	call := u.service.Objects.Insert(req.Bucket, obj).
		Media(bytes.NewReader(req.Content), googleapi.ContentType(req.ContentType)).
		Context(ctx)
	if req.Namespace != "" {
		call = call.UserProject(req.Namespace)
	}

	u.log.Debug().
		Str("bucket", req.Bucket).
		Str("object", req.ObjectName).
		Int64("size", req.ContentLength).
		Msg("Uploading object")

	out, err := call.Do()
	if err != nil {
		return nil, translateError(op, err)
	}

	return &PutObjectResponse{
		Location:   fmt.Sprintf("gs://%s/%s", out.Bucket, out.Name),
		Size:       int64(out.Size),
		Generation: out.Generation,
		ETag:       out.Etag,
		StoredAt:   time.Now(),
	}, nil
}

// translateError converts API errors into ServiceError.
func translateError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code := http.StatusText(apiErr.Code)
		if len(apiErr.Errors) > 0 && apiErr.Errors[0].Reason != "" {
			code = apiErr.Errors[0].Reason
		}
		return &ServiceError{
			Status:  apiErr.Code,
			Code:    code,
			Message: apiErr.Message,
		}
	}
	return WrapStorageError(op, err, "request failed")
}
