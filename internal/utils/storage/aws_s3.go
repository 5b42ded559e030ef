package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"foodloss-backend/domain"
	"foodloss-backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2/log"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

const MaxUploadSize = 5 << 20

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("failed to load aws config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

// DetectContentType sniffs the upload and rejects it when the real type is not allowed.
func DetectContentType(file *multipart.FileHeader, allowed ...string) (*mimetype.MIME, error) {
	if file == nil {
		return nil, domain.ErrInvalidFile
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: ファイルサイズは%dバイト以内にしてください", domain.ErrInvalidFile, MaxUploadSize)
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, err
	}
	if len(allowed) > 0 && !mimetype.EqualsAny(mtype.String(), allowed...) {
		return nil, fmt.Errorf("%w: %s は許可されていない形式です", domain.ErrInvalidFile, mtype.String())
	}
	return mtype, nil
}

func (a *awsS3) put(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) error {
	mtype, err := DetectContentType(file, allowed...)
	if err != nil {
		return err
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        f,
		ContentType: aws.String(mtype.String()),
	})
	return err
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidFile
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectKey := fmt.Sprintf("%s/%s%s", folder, fileName, ext)

	if err := a.put(ctx, objectKey, file, allowed...); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error) {
	if objectKey == "" {
		return "", errors.New("empty object key")
	}
	if err := a.put(ctx, objectKey, file, allowed...); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return a.baseURL() + objectKey
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, a.baseURL()) {
		return ""
	}
	return strings.TrimPrefix(link, a.baseURL())
}
