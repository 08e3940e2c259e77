package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/storage"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

type ThumbnailService interface {
	// Open returns a JPEG preview of file, rendering and caching it on first use.
	// Callers authorize through AccessGate first.
	Open(ctx context.Context, file models.File) (io.ReadCloser, error)
}

type thumbnailService struct {
	backend storage.Backend
}

func NewThumbnailService(backend storage.Backend) ThumbnailService {
	return &thumbnailService{backend: backend}
}

func (s *thumbnailService) Open(ctx context.Context, file models.File) (io.ReadCloser, error) {
	if !IsImageFile(file.Name) {
		return nil, newInvalidInput("Thumbnails are only available for image files")
	}

	key := thumbnailKey(file.StoredName)
	cached, err := s.backend.Open(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, storage.ErrObjectNotFound) {
		return nil, newStorageFailure("Could not read thumbnail", err)
	}

	src, err := s.backend.Open(ctx, file.StoredName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, newStorageFailure("Stored object is missing for file: "+file.Name, err)
		}
		return nil, newStorageFailure("Could not read file: "+file.Name, err)
	}
	defer src.Close()

	data, err := GenerateThumbnail(src)
	if err != nil {
		return nil, newInvalidInput("File is not a readable image")
	}

	if err := s.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "image/jpeg"); err != nil {
		logger.Warn("thumbnail not cached", zap.Uint("file_id", file.ID), zap.Error(err))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// GenerateThumbnail fits the image into the configured box and encodes it as JPEG.
func GenerateThumbnail(r io.Reader) ([]byte, error) {
	cfg := config.AppConfig.Thumbnail
	width, height, quality := cfg.Width, cfg.Height, cfg.Quality
	if width <= 0 {
		width = 320
	}
	if height <= 0 {
		height = 320
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, width, height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
