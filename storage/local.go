package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root directory is not configured")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	return &LocalBackend{root: filepath.Clean(abs)}, nil
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) Root() string { return b.root }

func (b *LocalBackend) EnsureRoot(_ context.Context) error {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return fmt.Errorf("could not create upload directory: %w", err)
	}
	return nil
}

func (b *LocalBackend) pathFor(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) {
		return "", ErrInvalidKey
	}
	p := filepath.Join(b.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, b.root+string(os.PathSeparator)) {
		return "", ErrInvalidKey
	}
	return p, nil
}

func (b *LocalBackend) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	p, err := b.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}

	dst, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return dst.Close()
}

func (b *LocalBackend) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := b.pathFor(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

func (b *LocalBackend) Delete(_ context.Context, key string) error {
	p, err := b.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
