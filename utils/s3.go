package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/nyakazi-storefront/config"
	"go.uber.org/zap"
)

var (
	PresignClient *s3.PresignClient
	s3InitOnce    sync.Once
	s3InitErr     error
)

// InitS3 initializes the S3 presign client used for product images
func InitS3() error {
	s3InitOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(appConfig.AWSRegion),
		)
		if err != nil {
			s3InitErr = fmt.Errorf("unable to load SDK config: %w", err)
			return
		}

		PresignClient = s3.NewPresignClient(s3.NewFromConfig(cfg))
		Logger.Info("S3 Client Initialized", zap.String("bucket", appConfig.AWSBucketName))
	})
	return s3InitErr
}

// GetPresignedURL generates a presigned URL for an object
func GetPresignedURL(ctx context.Context, objectKey string) (string, error) {
	if err := InitS3(); err != nil {
		return "", err
	}

	request, err := PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(appConfig.AWSBucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return request.URL, nil
}
