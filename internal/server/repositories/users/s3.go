package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/server/models"
)

// ObjectAPI is the slice of the S3 client used by S3Repository. *s3.Client
// satisfies it; tests substitute a fake.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository keeps the users artifact as a single JSON object in an
// S3-compatible bucket. Like the file backend it reloads the whole object
// before every operation and rewrites it on insert; a missing object is
// seeded with the demo record.
type S3Repository struct {
	client   ObjectAPI
	bucket   string
	key      string
	failOpen bool
	logger   logging.Logger
	mu       sync.Mutex
}

// S3Options carries connection settings for NewS3Client.
type S3Options struct {
	Region       string
	RootUser     string
	RootPassword string
	BaseEndpoint string
}

// NewS3Client builds an S3 client for the configured endpoint, e.g. a MinIO
// instance with static root credentials.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser, opts.RootPassword, "")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		o.UsePathStyle = true
	})
	return client, nil
}

func NewS3Repository(client ObjectAPI, bucket, key string, failOpen bool, logger logging.Logger) *S3Repository {
	return &S3Repository{
		client:   client,
		bucket:   bucket,
		key:      key,
		failOpen: failOpen,
		logger:   logger.With("module", "s3_store", "bucket", bucket, "key", key),
	}
}

func (r *S3Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email {
			return &records[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *S3Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *S3Repository) Exists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *S3Repository) Insert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, *user)
	if err := r.persist(ctx, records); err != nil {
		return err
	}

	r.logger.Info(ctx, "user added to storage",
		"id", user.ID, "email", user.Email, "total_users", len(records))
	return nil
}

func (r *S3Repository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *S3Repository) load(ctx context.Context) ([]models.User, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			seed := []models.User{demoUser}
			if err := r.persist(ctx, seed); err != nil {
				return nil, err
			}
			r.logger.Info(ctx, "users object absent, seeded demo record")
			return seed, nil
		}
		return r.degrade(ctx, fmt.Errorf("get users object: %w", err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return r.degrade(ctx, fmt.Errorf("read users object: %w", err))
	}

	var records []models.User
	if err := json.Unmarshal(data, &records); err != nil {
		return r.degrade(ctx, fmt.Errorf("parse users object: %w", err))
	}
	return records, nil
}

func (r *S3Repository) degrade(ctx context.Context, err error) ([]models.User, error) {
	if r.failOpen {
		r.logger.Warn(ctx, "treating unreadable users object as empty", "error", err.Error())
		return []models.User{}, nil
	}
	r.logger.Error(ctx, "users object unreadable", "error", err.Error())
	return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
}

func (r *S3Repository) persist(ctx context.Context, records []models.User) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: put users object: %v", common.ErrInternal, err)
	}
	return nil
}
