package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// client is the subset of the S3 SDK used here.
type client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}
