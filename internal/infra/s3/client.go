package s3

import (
	"task-service/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client wraps the S3 service for attachment blob storage
type Client struct {
	bucket string
	svc    *s3.S3
}

// NewClient creates an S3 client bound to the attachment bucket
func NewClient(cfg *config.AWSConfig) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	return &Client{
		bucket: cfg.AttachmentBucket,
		svc:    s3.New(sess),
	}, nil
}
