package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// PresignTTL is how long an upload URL stays valid.
const PresignTTL = 5 * time.Minute

// PathPrefix is where the object routes are mounted on the sandbox origin.
const PathPrefix = "/storage"

type Object struct {
	ContentType string
	Data        []byte
}

type pending struct {
	contentType string
	expires     time.Time
}

// S3Service signs S3-style PUT URLs against the sandbox's own origin and
// holds the uploaded objects in memory.
type S3Service struct {
	bucketName string
	region     string
	accessKey  string
	secretKey  string

	mu        sync.RWMutex
	client    *s3.S3
	publicURL string
	pending   map[string]pending
	objects   map[string]Object
}

func NewS3Service(region, bucketName, accessKey, secretKey, publicURL string) (*S3Service, error) {
	s := &S3Service{
		bucketName: bucketName,
		region:     region,
		accessKey:  accessKey,
		secretKey:  secretKey,
		pending:    map[string]pending{},
		objects:    map[string]Object{},
	}
	if err := s.SetPublicURL(publicURL); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPublicURL points signed and public URLs at a new origin.
func (s *S3Service) SetPublicURL(publicURL string) error {
	publicURL = strings.TrimRight(publicURL, "/")
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(s.region),
		Endpoint:         aws.String(publicURL + PathPrefix),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			s.accessKey,
			s.secretKey,
			"",
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create S3 session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = s3.New(sess)
	s.publicURL = publicURL
	return nil
}

func (s *S3Service) Bucket() string {
	return s.bucketName
}

type UploadTarget struct {
	Key       string
	UploadURL string
	ImageURL  string
}

// PresignUpload reserves a fresh key under folder and signs a PUT for it.
func (s *S3Service) PresignUpload(folder, filename, contentType string) (*UploadTarget, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	key := fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)

	s.mu.Lock()
	defer s.mu.Unlock()

	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	uploadURL, err := req.Presign(PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	s.pending[key] = pending{contentType: contentType, expires: time.Now().Add(PresignTTL)}
	return &UploadTarget{
		Key:       key,
		UploadURL: uploadURL,
		ImageURL:  fmt.Sprintf("%s%s/%s/%s", s.publicURL, PathPrefix, s.bucketName, key),
	}, nil
}

var (
	ErrNotSigned   = errors.New("object key was not signed for upload")
	ErrExpired     = errors.New("upload URL has expired")
	ErrContentType = errors.New("content type does not match the signed request")
)

// Put accepts an upload to a key previously returned by PresignUpload. The
// signature itself is not recomputed; the key must be pending, unexpired and
// sent with the signed content type.
func (s *S3Service) Put(key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return ErrNotSigned
	}
	if time.Now().After(p.expires) {
		delete(s.pending, key)
		return ErrExpired
	}
	if !strings.EqualFold(p.contentType, contentType) {
		return ErrContentType
	}

	delete(s.pending, key)
	s.objects[key] = Object{ContentType: contentType, Data: append([]byte(nil), data...)}
	return nil
}

func (s *S3Service) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// KeyFromURL returns the object key of an image URL issued by this service.
func (s *S3Service) KeyFromURL(imageURL string) (string, bool) {
	s.mu.RLock()
	prefix := fmt.Sprintf("%s%s/%s/", s.publicURL, PathPrefix, s.bucketName)
	s.mu.RUnlock()
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(imageURL, prefix), true
}
