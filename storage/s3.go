package storage

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Store keeps uploads in an S3 bucket under an uploads/ prefix. Selected
// when AWS_BUCKET_NAME is configured.
type S3Store struct {
	Region string
	Bucket string
}

func NewS3Store(region, bucket string) *S3Store {
	return &S3Store{Region: region, Bucket: bucket}
}

func (s *S3Store) client() *s3.S3 {
	s3session := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(s.Region),
	}))
	return s3.New(s3session)
}

func (s *S3Store) Save(name string, data []byte, contentType string) (string, error) {
	key := "uploads/" + name
	_, err := s.client().PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to S3: %v", err)
	}
	log.Println("Uploaded file to S3:", key)
	return "/" + key, nil
}

func (s *S3Store) ReadFile(path string) ([]byte, error) {
	out, err := s.client().GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String("uploads/" + fileName(path)),
	})
	if err != nil {
		return nil, fmt.Errorf("error reading from S3: %v", err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Store) Remove(path string) error {
	_, err := s.client().DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String("uploads/" + fileName(path)),
	})
	return err
}
