package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/storage"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

// allowedCertificateTypes are the content types accepted for certificates.
var allowedCertificateTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

const downloadURLExpiry = 15 * time.Minute

// AttachmentListResult is a page of certificate attachments.
type AttachmentListResult struct {
	Items []model.SickNoteAttachment `json:"data"`
	Total int                        `json:"total"`
}

// SickNoteAttachmentService keeps the certificates of sick notes.
type SickNoteAttachmentService interface {
	// Upload streams r to object storage and saves the metadata. The object is
	// removed again when the metadata cannot be saved.
	Upload(ctx context.Context, sickNoteID string, r io.Reader, originalFilename, contentType string, size int64) (*model.SickNoteAttachment, error)

	List(ctx context.Context, sickNoteID string, limit, offset int) (*AttachmentListResult, error)
	Get(ctx context.Context, id string) (*model.SickNoteAttachment, error)

	// DownloadURL returns a presigned URL for the attachment.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Delete removes the object first and the metadata afterwards.
	Delete(ctx context.Context, id string) error
}

type sickNoteAttachmentService struct {
	store     storage.Storage
	repo      repository.SickNoteAttachmentRepository
	sickNotes repository.SickNoteRepository
}

func NewSickNoteAttachmentService(store storage.Storage, repo repository.SickNoteAttachmentRepository,
	sickNotes repository.SickNoteRepository) SickNoteAttachmentService {
	return &sickNoteAttachmentService{store: store, repo: repo, sickNotes: sickNotes}
}

func (s *sickNoteAttachmentService) Upload(ctx context.Context, sickNoteID string, r io.Reader, originalFilename, contentType string, size int64) (*model.SickNoteAttachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if sickNoteID == "" {
		return nil, ErrIDRequired
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedCertificateTypes[contentType] {
		return nil, ErrUnsupportedContentType
	}
	if _, err := s.sickNotes.FindByID(ctx, sickNoteID); err != nil {
		return nil, notFound(err)
	}

	genName := uuid.New().String() + strings.ToLower(filepath.Ext(originalFilename))
	key := path.Join("sicknotes", sickNoteID, genName)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"sick-note-id":      sickNoteID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	attachment := &model.SickNoteAttachment{
		ID:               uuid.New().String(),
		SickNoteID:       sickNoteID,
		Filename:         genName,
		OriginalFilename: originalFilename,
		StoragePath:      objInfo.Key,
		Size:             objInfo.Size,
		ContentType:      objInfo.ContentType,
		CreatedAt:        now().UTC(),
	}
	stored, err := s.repo.Create(ctx, attachment)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *sickNoteAttachmentService) List(ctx context.Context, sickNoteID string, limit, offset int) (*AttachmentListResult, error) {
	if sickNoteID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, sickNoteID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AttachmentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *sickNoteAttachmentService) Get(ctx context.Context, id string) (*model.SickNoteAttachment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *sickNoteAttachmentService) DownloadURL(ctx context.Context, id string) (string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, a.StoragePath, downloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *sickNoteAttachmentService) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Keep the row when the object cannot be removed so the key is not lost.
	if err := s.store.Delete(ctx, a.StoragePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
