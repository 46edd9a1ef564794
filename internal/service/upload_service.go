package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"hygall/internal/config"
	"hygall/internal/models"

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/hygall/uploads"
	DefaultUploadMaxSizeMB = 10
)

// UploadService stores image assets embedded in posts. Files are named by
// content hash, so re-uploading the same bytes yields the same locator.
type UploadService struct {
	uploadDir    string
	maxSizeBytes int64
}

type UploadAssetInput struct {
	Filename string
	Content  []byte
}

func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	maxSizeMB := DefaultUploadMaxSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxSizeMB > 0 {
			maxSizeMB = cfg.UploadMaxSizeMB
		}
	}

	return &UploadService{
		uploadDir:    uploadDir,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// UploadAsset validates and persists an uploaded image, returning the asset
// locator the editing surface embeds into content.
func (s *UploadService) UploadAsset(in UploadAssetInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewUploadError(fmt.Errorf("empty upload"))
	}
	if int64(len(in.Content)) > s.maxSizeBytes {
		return "", models.NewUploadError(fmt.Errorf("upload exceeds %d bytes", s.maxSizeBytes))
	}

	// Decode the header to confirm this is an image we can serve.
	_, format, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewUploadError(fmt.Errorf("unsupported image payload: %w", err))
	}

	sum := sha256.Sum256(in.Content)
	name := hex.EncodeToString(sum[:16]) + "." + format

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", models.NewUploadError(err)
	}
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, in.Content, 0o644); err != nil {
		return "", models.NewUploadError(err)
	}

	return "/uploads/" + name, nil
}

// Dir returns the directory uploads are stored in, for static serving.
func (s *UploadService) Dir() string {
	return s.uploadDir
}
