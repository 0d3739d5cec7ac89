package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"nysc-services/internal/config"
	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5MB upload limit")
	ErrInvalidFileType = errors.New("only JPEG, PNG, or PDF files are accepted")
)

type Service interface {
	Upload(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Download(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	docRepo     repository.DocumentRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(docRepo repository.DocumentRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		docRepo:     docRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Document, error) {
	if fileSize > domain.MaxDocumentSize {
		return nil, ErrFileTooLarge
	}
	if !domain.AllowedDocumentTypes[mimeType] {
		return nil, ErrInvalidFileType
	}

	docID := uuid.New()
	storagePath := fmt.Sprintf("letters/%s/%s", time.Now().Format("2006/01"), docID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	doc := &domain.Document{
		ID:          docID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	return doc, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// Download streams the stored object. The bucket is private, so admin reads
// go through the API rather than a public URL.
func (s *service) Download(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.minioClient.GetObject(ctx, s.cfg.MinIOBucket, doc.StoragePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch from MinIO: %w", err)
	}

	return doc, obj, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, doc.StoragePath, minio.RemoveObjectOptions{})
	return nil
}
