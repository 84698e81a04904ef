// Package adapts3 resolves stored photo references to presigned S3 URLs.
package adapts3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"logyourbody/internal/domain"
)

var _ domain.PhotoURLResolver = (*Resolver)(nil)

// Presigner is the subset of *s3.PresignClient the resolver uses.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Resolver presigns GET URLs for photo object keys. References that are
// already absolute http(s) URLs are returned unchanged.
type Resolver struct {
	presigner Presigner
	bucket    string
	ttl       time.Duration
}

// NewResolver creates a Resolver for bucket.
func NewResolver(presigner Presigner, bucket string, ttl time.Duration) (*Resolver, error) {
	if presigner == nil {
		return nil, errors.New("s3 presigner nil")
	}
	if bucket == "" {
		return nil, errors.New("bucket is empty")
	}
	return &Resolver{presigner: presigner, bucket: bucket, ttl: ttl}, nil
}

// NewFromDefaultConfig builds a Resolver from the default AWS credential
// chain. A non-empty endpoint overrides the S3 endpoint (MinIO, localstack).
func NewFromDefaultConfig(ctx context.Context, region, endpoint, bucket string, ttl time.Duration) (*Resolver, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpoint != "" {
			return aws.Endpoint{
				PartitionID:       "aws",
				URL:               endpoint,
				SigningRegion:     region,
				HostnameImmutable: true,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsconfig, err := config.LoadDefaultConfig(ctx, config.WithEndpointResolverWithOptions(customResolver), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewResolver(s3.NewPresignClient(s3.NewFromConfig(awsconfig)), bucket, ttl)
}

// TTL is how long a resolved URL stays valid.
func (r *Resolver) TTL() time.Duration {
	return r.ttl
}

// ResolveURL implements domain.PhotoURLResolver.
func (r *Resolver) ResolveURL(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return ref, nil
	}
	key := strings.TrimPrefix(ref, "/")
	if key == "" {
		return "", errors.New("empty photo reference")
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("presign key=[%s], bucket=[%s]: %w", key, r.bucket, err)
	}
	return req.URL, nil
}
