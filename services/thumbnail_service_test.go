package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/Viniciustertuliano/photovault/models"
)

func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode src image: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailRenderedAndCached(t *testing.T) {
	f := newFixture()
	file := models.File{ID: 1, Name: "photo.jpg", StoredName: "abc.jpg"}
	f.backend.objects[file.StoredName] = encodeTestJPEG(t, 200, 100)
	svc := NewThumbnailService(f.backend)

	rc, err := svc.Open(context.Background(), file)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not a jpeg: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > 64 || bounds.Dy() > 64 || bounds.Dx() <= 0 {
		t.Fatalf("thumbnail should be bounded by 64x64, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	cached, ok := f.backend.objects["thumbnails/abc.jpg.jpg"]
	if !ok || !bytes.Equal(cached, data) {
		t.Fatalf("expected thumbnail to be cached")
	}

	f.backend.objects["thumbnails/abc.jpg.jpg"] = []byte("cached")
	rc, err = svc.Open(context.Background(), file)
	if err != nil {
		t.Fatalf("cached Open failed: %v", err)
	}
	data, _ = io.ReadAll(rc)
	if string(data) != "cached" {
		t.Fatalf("expected cached thumbnail to be served, got %d bytes", len(data))
	}
}

func TestThumbnailRejectsNonImages(t *testing.T) {
	f := newFixture()
	svc := NewThumbnailService(f.backend)

	_, err := svc.Open(context.Background(), models.File{Name: "doc.pdf", StoredName: "x.pdf"})
	if KindOf(err) != KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}

	f.backend.objects["y.png"] = []byte("not really a png")
	_, err = svc.Open(context.Background(), models.File{Name: "fake.png", StoredName: "y.png"})
	if KindOf(err) != KindInvalidInput {
		t.Fatalf("expected invalid input for undecodable image, got %v", err)
	}
}

func TestThumbnailMissingSource(t *testing.T) {
	f := newFixture()
	svc := NewThumbnailService(f.backend)

	_, err := svc.Open(context.Background(), models.File{Name: "gone.jpg", StoredName: "gone.jpg"})
	if KindOf(err) != KindStorageFailure {
		t.Fatalf("expected storage failure, got %v", err)
	}
}
