// Package gcsstore reads model artifacts from a Google Cloud Storage bucket.
package gcsstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/resilience"
)

type Config struct {
	Bucket          string
	CredentialsFile string
}

type openFunc func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

type Source struct {
	bucket   string
	open     openFunc
	close    func() error
	executor *resilience.Executor
}

// New uses application default credentials unless a credentials file is given.
// STORAGE_EMULATOR_HOST is honoured by the client library.
func New(ctx context.Context, cfg Config, executor *resilience.Executor) (*Source, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Source{
		bucket: cfg.Bucket,
		open: func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
			return client.Bucket(bucket).Object(object).NewReader(ctx)
		},
		close:    client.Close,
		executor: executor,
	}, nil
}

func (s *Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	raw, err := resilience.Call(ctx, s.executor, "gcs.read_object", func(ctx context.Context) ([]byte, error) {
		return s.download(ctx, key)
	}, resilience.TemporaryErrors)
	if err != nil {
		return nil, fmt.Errorf("fetch gs://%s/%s: %w", s.bucket, key, err)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *Source) download(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.open(ctx, s.bucket, key)
	if err != nil {
		return nil, classifyError("open object", err)
	}
	defer reader.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "read object", err)
	}
	return buf.Bytes(), nil
}

func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *Source) String() string {
	return "gs://" + s.bucket
}

func classifyError(operation string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return domain.WrapError(domain.ErrTemporary, operation, err)
		}
		return fmt.Errorf("%s: %w", operation, err)
	}
	return domain.WrapError(domain.ErrTemporary, operation, err)
}
