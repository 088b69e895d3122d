package candidatelog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go-hiring-assistant/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client used by the log.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Repository struct {
	client ObjectAPI
	bucket string
	key    string
	mu     sync.Mutex
}

func NewS3Repository(client ObjectAPI, bucket, key string) domain.CandidateLogRepository {
	if key == "" {
		key = "candidates.json"
	}
	return &s3Repository{client: client, bucket: bucket, key: key}
}

func (r *s3Repository) Append(ctx context.Context, record domain.CandidateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode candidate log: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put candidate log s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return nil
}

func (r *s3Repository) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *s3Repository) load(ctx context.Context) ([]domain.CandidateRecord, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []domain.CandidateRecord{}, nil
		}
		return nil, fmt.Errorf("get candidate log s3://%s/%s: %w", r.bucket, r.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read candidate log body: %w", err)
	}
	return decodeRecords(data, "s3://"+r.bucket+"/"+r.key), nil
}
