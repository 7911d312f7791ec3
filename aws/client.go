package aws

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Client publishes voice replies to S3 so SMS/WhatsApp can fetch them by URL.
type Client struct {
	bucket   string
	region   string
	uploader uploader
}

func NewClient(region, bucket string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("AWS session created successfully")

	return &Client{
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// UploadAudio stores data under audio/<date>/<uuid><ext> with public-read ACL
// and returns the object's public URL.
func (c *Client) UploadAudio(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	key := path.Join("audio", time.Now().UTC().Format("2006-01-02"), uuid.NewString()+ext)

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("content_size", len(data)).
		Msg("Starting S3 upload")

	result, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", c.bucket).
			Str("key", key).
			Msg("S3 upload failed")
		return "", fmt.Errorf("failed to upload audio to S3: %w", err)
	}

	publicURL := c.publicURL(key)

	log.Info().
		Str("s3_url", publicURL).
		Str("s3_location", result.Location).
		Msg("Audio uploaded to S3 successfully")

	return publicURL, nil
}

func (c *Client) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
