package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/storage"
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type photoService struct {
	store    storage.Storage
	maxFiles int
	maxSize  int64
}

func NewPhotoService(store storage.Storage, maxFiles int, maxSizeMB int64) PhotoService {
	return &photoService{
		store:    store,
		maxFiles: maxFiles,
		maxSize:  maxSizeMB * 1024 * 1024,
	}
}

// UploadPhotos stores a batch of photos under the rental's directory.
// The batch is not atomic: each file succeeds or fails on its own and the
// caller gets a per-file result.
func (s *photoService) UploadPhotos(ctx context.Context, rentalID string, files []PhotoUpload) ([]PhotoResult, error) {
	if strings.TrimSpace(rentalID) == "" {
		return nil, domain.NewValidationError("rental_id is required",
			domain.FieldError{Field: "rental_id", Message: "must not be empty"})
	}
	if len(files) == 0 {
		return nil, domain.NewValidationError("no files provided",
			domain.FieldError{Field: "photos", Message: "at least one file is required"})
	}
	if len(files) > s.maxFiles {
		return nil, domain.NewValidationError(
			fmt.Sprintf("too many files, at most %d allowed", s.maxFiles),
			domain.FieldError{Field: "photos", Message: fmt.Sprintf("got %d files", len(files))})
	}

	results := make([]PhotoResult, 0, len(files))
	for _, f := range files {
		res := PhotoResult{Filename: f.Filename}
		if !allowedPhotoTypes[f.ContentType] {
			res.Error = fmt.Sprintf("unsupported content type %s", f.ContentType)
			results = append(results, res)
			continue
		}
		if f.Size > s.maxSize {
			res.Error = fmt.Sprintf("file exceeds %d bytes", s.maxSize)
			results = append(results, res)
			continue
		}

		key := photoKey(rentalID, f.Filename)
		url, err := s.store.Save(ctx, key, f.Data)
		if err != nil {
			res.Error = "failed to store file"
			results = append(results, res)
			continue
		}
		res.URL = url
		res.OK = true
		results = append(results, res)
	}
	return results, nil
}

func (s *photoService) ListPhotos(ctx context.Context, rentalID string) ([]string, error) {
	if strings.TrimSpace(rentalID) == "" {
		return nil, domain.NewValidationError("rental_id is required",
			domain.FieldError{Field: "rental_id", Message: "must not be empty"})
	}
	keys, err := s.store.List(ctx, "rentals/"+rentalID)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, s.store.URL(key))
	}
	return urls, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, rentalID, filename string) error {
	if strings.TrimSpace(rentalID) == "" || strings.TrimSpace(filename) == "" {
		return domain.NewValidationError("rental_id and filename are required")
	}
	// Reject traversal attempts; the filename must be a bare name
	if filename != filepath.Base(filename) {
		return domain.NewValidationError("invalid filename",
			domain.FieldError{Field: "filename", Message: "must not contain path separators"})
	}
	return s.store.Delete(ctx, "rentals/"+rentalID+"/"+filename)
}

// DeleteByURL removes a stored photo given its public URL. URLs that do not
// point into the upload area are ignored.
func (s *photoService) DeleteByURL(ctx context.Context, url string) error {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		return nil
	}
	key := url[idx+len("/uploads/"):]
	if key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}

// photoKey builds a collision-resistant storage key: timestamp, random
// suffix and the sanitized original name, scoped to the rental
func photoKey(rentalID, filename string) string {
	return fmt.Sprintf("rentals/%s/%d-%s-%s",
		rentalID, time.Now().UnixNano(), randomSuffix(), sanitizeFilename(filename))
}

func randomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// sanitizeFilename strips path components and replaces anything outside
// [a-zA-Z0-9._-] with an underscore
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "photo"
	}
	return sb.String()
}
