// Package publish uploads finished archives to S3-compatible storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/sirupsen/logrus"
)

// ContentTypeZip is stored with every uploaded archive
const ContentTypeZip = "application/zip"

// ErrNoBucket is returned when publishing is requested without a bucket
var ErrNoBucket = errors.New("s3 bucket is not configured")

// S3Config holds the upload target and optional static credentials
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// S3Publisher uploads archives with the s3manager multipart uploader
type S3Publisher struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	prefix   string
	logger   logrus.FieldLogger
}

// NewS3Publisher creates a publisher; without static keys the default AWS
// credential chain is used
func NewS3Publisher(cfg S3Config, logger logrus.FieldLogger) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBucket
	}

	config := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		config.Endpoint = aws.String(cfg.Endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return NewS3PublisherWithUploader(s3manager.NewUploader(sess), cfg, logger), nil
}

// NewS3PublisherWithUploader creates a publisher around an existing uploader
func NewS3PublisherWithUploader(uploader s3manageriface.UploaderAPI, cfg S3Config, logger logrus.FieldLogger) *S3Publisher {
	return &S3Publisher{
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
		logger:   logger,
	}
}

// Key returns the object key used for the archive at localPath
func (p *S3Publisher) Key(localPath string) string {
	name := filepath.Base(localPath)
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads the file at localPath and returns its location
func (p *S3Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	key := p.Key(localPath)
	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(ContentTypeZip),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload '%s': %w", key, err)
	}

	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{
			"bucket":   p.bucket,
			"key":      key,
			"location": out.Location,
		}).Info("Archive uploaded")
	}
	return out.Location, nil
}
