package s3

import (
	"fmt"
	"io"
	"task-service/internal/infra/cache"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// ObjectKey builds the canonical storage key for an attachment. Keys are
// prefixed by organization and task so per-tenant cleanup stays a prefix
// operation.
func ObjectKey(orgID, taskID, attachmentID uuid.UUID, filename string) string {
	return fmt.Sprintf("org/%s/task/%s/%s/%s", orgID, taskID, attachmentID, filename)
}

// Upload stores an attachment blob under the given key
func (c *Client) Upload(src io.Reader, objectKey string) error {
	_, err := c.svc.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
		Body:   aws.ReadSeekCloser(src),
	})
	return err
}

// DownloadURL returns a presigned download URL for the attachment. URLs are
// cached until shortly before expiry so repeated reads of the same
// attachment do not re-sign.
func (c *Client) DownloadURL(objectKey, mimeType string, urlCache *cache.URLCache, expiry time.Duration) (string, error) {
	if url, found := urlCache.Get(objectKey); found {
		return url, nil
	}

	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket:              aws.String(c.bucket),
		Key:                 aws.String(objectKey),
		ResponseContentType: aws.String(mimeType),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		return "", err
	}

	urlCache.Set(objectKey, url, time.Now().Add(expiry/2))

	return url, nil
}

// Delete removes an attachment blob
func (c *Client) Delete(objectKey string) error {
	_, err := c.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}
