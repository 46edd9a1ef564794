package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hygall/internal/config"
	"hygall/internal/models"
	"hygall/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(&config.Config{
		UploadDir:       t.TempDir(),
		UploadMaxSizeMB: 1,
	})
}

func TestUploadService_StoresByContentHash(t *testing.T) {
	svc := newUploadService(t)
	payload := testutil.TinyPNG(t, 4, 4)

	locator, err := svc.UploadAsset(UploadAssetInput{Filename: "pic.png", Content: payload})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(locator, "/uploads/"))
	assert.True(t, strings.HasSuffix(locator, ".png"))

	// Same bytes, same locator.
	again, err := svc.UploadAsset(UploadAssetInput{Filename: "other-name.png", Content: payload})
	require.NoError(t, err)
	assert.Equal(t, locator, again)

	stored, err := os.ReadFile(filepath.Join(svc.Dir(), filepath.Base(locator)))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestUploadService_RejectsNonImage(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.UploadAsset(UploadAssetInput{Filename: "evil.sh", Content: []byte("#!/bin/sh\n")})
	assertAppErrorCode(t, err, models.CodeUpload)

	_, err = svc.UploadAsset(UploadAssetInput{Filename: "empty.png"})
	assertAppErrorCode(t, err, models.CodeUpload)
}

func TestUploadService_RejectsOversized(t *testing.T) {
	svc := newUploadService(t)

	huge := make([]byte, 2*1024*1024)
	_, err := svc.UploadAsset(UploadAssetInput{Filename: "big.png", Content: huge})
	assertAppErrorCode(t, err, models.CodeUpload)
}
