// Package objectstore presigns direct-to-bucket upload URLs for file
// resources.
package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/timex"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// UploadURL is a presigned request the client performs itself.
type UploadURL struct {
	URL       string             `json:"url"`
	Method    string             `json:"method"`
	Key       string             `json:"key"`
	ExpiresAt timex.EpochSeconds `json:"expiresAt"`
}

// Presigner hands out upload URLs for a file of a class.
type Presigner interface {
	PresignUpload(ctx context.Context, classID models.ClassID, f models.File) (UploadURL, error)
}

// Settings is what S3Presigner needs from the server configuration.
type Settings struct {
	User, Password string
	Bucket, Region string
	BaseEndpoint   string
	Validity       time.Duration
}

// S3Presigner signs PutObject requests against an S3-compatible store.
type S3Presigner struct {
	client   *s3.PresignClient
	bucket   string
	validity time.Duration
	now      func() time.Time
}

// NewS3Presigner builds a presigner with static credentials. A non-empty
// BaseEndpoint switches to path-style addressing so MinIO works.
func NewS3Presigner(ctx context.Context, s Settings) (*S3Presigner, error) {
	if s.Bucket == "" {
		return nil, common.ErrUploadsDisabled
	}
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.User, s.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client:   s3.NewPresignClient(client),
		bucket:   s.Bucket,
		validity: s.Validity,
		now:      time.Now,
	}, nil
}

// ObjectKey is the bucket key a file's content is uploaded to.
func ObjectKey(classID models.ClassID, f models.File) string {
	return path.Join("classes", classID.String(), f.ID.String(), path.Base("/"+f.ResourceInfo.FileName))
}

func (p *S3Presigner) PresignUpload(ctx context.Context, classID models.ClassID, f models.File) (UploadURL, error) {
	key := ObjectKey(classID, f)
	req, err := presignPutObject(p.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.validity))
	if err != nil {
		return UploadURL{}, fmt.Errorf("presign put %s: %w", key, err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodPut
	}
	return UploadURL{
		URL:       req.URL,
		Method:    method,
		Key:       key,
		ExpiresAt: timex.NewEpochSeconds(p.now().Add(p.validity)),
	}, nil
}

// Disabled is used when no bucket is configured.
type Disabled struct{}

func (Disabled) PresignUpload(context.Context, models.ClassID, models.File) (UploadURL, error) {
	return UploadURL{}, common.ErrUploadsDisabled
}
