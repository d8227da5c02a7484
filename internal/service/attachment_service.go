package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bizmate/internal/config"
	"bizmate/internal/domain"
	"bizmate/internal/port"
)

const sniffLen = 512

// UploadFileInput carries a multipart upload plus an optional owning
// document. Attachments uploaded before the document exists are bound later
// on submission.
type UploadFileInput struct {
	Identity   domain.Identity
	DocumentID *uuid.UUID
	FileHeader *multipart.FileHeader
}

// AttachmentService defines attachment upload, retrieval, and preview.
type AttachmentService interface {
	Upload(ctx context.Context, input *UploadFileInput) (*domain.Attachment, error)
	Get(ctx context.Context, attID uuid.UUID) (*domain.Attachment, error)
	GetDownloadURL(ctx context.Context, attID uuid.UUID) (string, error)
	// Preview returns extracted text for PDF attachments and an empty string
	// for types with no extractor.
	Preview(ctx context.Context, attID uuid.UUID) (string, error)
	Delete(ctx context.Context, attID uuid.UUID, id domain.Identity) error
}

type attachmentService struct {
	repo      port.AttachmentRepository
	storage   port.ObjectStorage
	extractor port.TextExtractor
	cfg       *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(repo port.AttachmentRepository, storage port.ObjectStorage, extractor port.TextExtractor, cfg *config.S3Config) AttachmentService {
	return &attachmentService{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		cfg:       cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, input *UploadFileInput) (*domain.Attachment, error) {
	header := input.FileHeader
	if header.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	// Sniff the real content type rather than trusting the client header.
	buf := make([]byte, sniffLen)
	n, err := file.Read(buf)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewinding upload: %w", err)
	}

	attID := uuid.New()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storedName := attID.String() + ext
	key := fmt.Sprintf("attachments/%s/%s", time.Now().UTC().Format("2006/01"), storedName)

	att := &domain.Attachment{
		ID:           attID,
		DocumentID:   input.DocumentID,
		UploadedBy:   input.Identity.UserID,
		OriginalName: header.Filename,
		StoredName:   storedName,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        key,
		FileSize:     header.Size,
		ContentType:  contentType,
		Status:       domain.AttachmentPending,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("creating attachment record: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        file,
		ContentType: contentType,
		Size:        header.Size,
	}); err != nil {
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.UpdateStatus(ctx, attID, domain.AttachmentUploaded); err != nil {
		return nil, fmt.Errorf("marking attachment uploaded: %w", err)
	}
	att.Status = domain.AttachmentUploaded
	return att, nil
}

func (s *attachmentService) Get(ctx context.Context, attID uuid.UUID) (*domain.Attachment, error) {
	return s.repo.GetByID(ctx, attID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, attID uuid.UUID) (string, error) {
	att, err := s.repo.GetByID(ctx, attID)
	if err != nil {
		return "", err
	}
	if att.Status != domain.AttachmentUploaded {
		return "", domain.ErrAttachmentNotFound
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, att.OriginalName, s.cfg.PresignExpiry)
}

func (s *attachmentService) Preview(ctx context.Context, attID uuid.UUID) (string, error) {
	att, err := s.repo.GetByID(ctx, attID)
	if err != nil {
		return "", err
	}
	if att.Status != domain.AttachmentUploaded {
		return "", domain.ErrAttachmentNotFound
	}
	if att.ContentType != "application/pdf" || s.extractor == nil {
		return "", nil
	}

	data, err := s.storage.Download(ctx, att.S3Bucket, att.S3Key)
	if err != nil {
		return "", fmt.Errorf("downloading attachment: %w", err)
	}
	return s.extractor.ExtractText(data)
}

func (s *attachmentService) Delete(ctx context.Context, attID uuid.UUID, id domain.Identity) error {
	att, err := s.repo.GetByID(ctx, attID)
	if err != nil {
		return err
	}
	if att.UploadedBy != id.UserID && !IsAdmin(id) {
		return domain.ErrForbidden
	}
	// Attachments on a routed document are part of the record.
	if att.DocumentID != nil {
		return domain.ErrAttachmentBound
	}

	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		return fmt.Errorf("deleting stored object: %w", err)
	}
	return s.repo.Delete(ctx, attID)
}
