package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// Storage is the object store used for logos and archived documents.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

type OSSService struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
	PublicBase string
}

// NewOSSServiceFromEnv returns ErrNotConfigured when ALI_OSS_* is incomplete.
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, ErrNotConfigured
	}

	var opts []oss.ClientOption
	if sts != "" {
		opts = append(opts, oss.SecurityToken(sts))
	}
	client, err := oss.New(endpoint, ak, sk, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	log.Printf("[INFO] oss bucket %s ready", bucketName)

	return &OSSService{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: getEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

func (s *OSSService) fullKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + strings.TrimLeft(key, "/")
}

func (s *OSSService) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(s.fullKey(key), r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Bucket.GetObject(s.fullKey(key), oss.WithContext(ctx))
}

func (s *OSSService) Delete(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(s.fullKey(key), oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return publicURL(s.PublicBase, s.BucketName, s.Endpoint, s.fullKey(key))
}

func publicURL(base, bucket, endpoint, key string) string {
	if base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, end, key)
}

func IsNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404
	}
	return false
}

// BuildObjectKey gives dir/name_YYYYMMDD_HHMMSS_rand.ext so re-uploads never collide.
func BuildObjectKey(dir, name, ext string, now time.Time) string {
	name = strings.Trim(name, "/ ")
	if name == "" {
		name = "file"
	}
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	file := fmt.Sprintf("%s_%s_%s%s", name, now.Format("20060102_150405"), hex.EncodeToString(b), ext)
	return path.Join(strings.Trim(dir, "/"), file)
}
