package storage

import (
	"recipebook/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AllowImage = []string{"image/png", "image/jpeg", "image/webp"}

	ErrInvalidImagePayload = errors.New("invalid base64 image payload")
	ErrContentTypeDenied   = errors.New("content type not allowed")
)

type (
	AwsS3 interface {
		UploadBase64(objectKey string, data string, allowed ...string) (string, error)
		DeleteFile(objectKey string) error
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	utils.LoadConfig()
	region := utils.GetConfig("AWS_S3_REGION")

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Printf("failed to load AWS config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

func (a *awsS3) UploadBase64(objectKey string, data string, allowed ...string) (string, error) {
	contentType, payload, err := decodeBase64Image(data)
	if err != nil {
		return "", err
	}

	if len(allowed) > 0 {
		permitted := false
		for _, candidate := range allowed {
			if candidate == contentType {
				permitted = true
				break
			}
		}
		if !permitted {
			return "", ErrContentTypeDenied
		}
	}

	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey), nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

// decodeBase64Image accepts either a data URL ("data:image/png;base64,...")
// or a bare base64 string and returns the detected content type and bytes.
func decodeBase64Image(data string) (string, []byte, error) {
	declaredType := ""
	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return "", nil, ErrInvalidImagePayload
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		declaredType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ";")
		data = parts[1]
	}

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, ErrInvalidImagePayload
	}

	contentType := declaredType
	if contentType == "" {
		contentType = http.DetectContentType(payload)
	}
	return contentType, payload, nil
}
