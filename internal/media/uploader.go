// Package media реализует загрузку медиафайлов в S3-совместимое хранилище
// (MinIO или AWS S3). Файл из multipart-запроса передается в хранилище потоком,
// без временных файлов на диске, наружу возвращается публичный URL объекта.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/videonest/backend/internal/config"
)

// Uploader загружает файлы в бакет и строит их публичные URL.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewUploader создает клиент S3 по настройкам хранилища медиафайлов.
func NewUploader(ctx context.Context, cfg config.MediaStorage) (*Uploader, error) {
	const op = "media.NewUploader"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			// MinIO не поддерживает virtual-host адресацию бакетов
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}, nil
}

// StorageKey строит ключ объекта: каталог, дата и случайный uuid
// с исходным расширением файла.
func StorageKey(folder, filename string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s",
		folder, d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}

// Upload передает содержимое файла в бакет и возвращает публичный URL объекта.
func (u *Uploader) Upload(ctx context.Context, file io.Reader, folder, filename, contentType string) (string, error) {
	const op = "media.Upload"

	key := StorageKey(folder, filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.publicURL + "/" + key, nil
}
