package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/pagecraft/pagecraft/internal/domain/media"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/storage"
)

// MaxUploadBytes caps a single media upload
const MaxUploadBytes = 10 << 20 // 10 MiB

var allowedContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MediaService stores upload blobs and their metadata rows
type MediaService struct {
	repo    media.Repository
	storage storage.Storage
	logger  *logger.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo media.Repository, store storage.Storage, log *logger.Logger) *MediaService {
	return &MediaService{
		repo:    repo,
		storage: store,
		logger:  log,
	}
}

// Upload validates and stores one asset
func (s *MediaService) Upload(ctx context.Context, userID int64, fileName, contentType string, size int64, body io.Reader) (*media.Media, error) {
	if size > MaxUploadBytes {
		return nil, errors.BadRequest(fmt.Sprintf("File exceeds the %d MB upload limit", MaxUploadBytes>>20))
	}
	if !allowedContentTypes[contentType] {
		return nil, errors.BadRequest("Unsupported file type")
	}

	// Object keys are opaque; the original name survives only in metadata
	key := fmt.Sprintf("%d/%s%s", userID, uuid.New().String(), strings.ToLower(path.Ext(fileName)))

	url, err := s.storage.Put(ctx, key, contentType, io.LimitReader(body, MaxUploadBytes))
	if err != nil {
		return nil, errors.Internal("Failed to store file", err)
	}

	m := &media.Media{
		UserID:      userID,
		FileName:    fileName,
		ObjectKey:   key,
		ContentType: contentType,
		SizeBytes:   size,
		URL:         url,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// Best effort: don't leave an orphaned blob behind
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"media_id": m.ID,
		"user_id":  userID,
		"size":     size,
	}).Info("Media uploaded")

	return m, nil
}

// Delete removes an accessible asset and its blob
func (s *MediaService) Delete(ctx context.Context, actorID int64, actorRole string, id int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanAccess(actorRole, actorID, m.UserID) {
		return errors.Forbidden("You do not have access to this file")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, m.ObjectKey); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete media blob")
	}
	return nil
}

// ListByUser retrieves a user's assets
func (s *MediaService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*media.Media, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
