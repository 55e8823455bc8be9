// Package storage keeps uploaded product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType is returned for files that are not images.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrImageNotFound is returned when deleting an image that is not stored.
	ErrImageNotFound = errors.New("image not found")
)

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// PutInput describes an upload.
type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

// PutResult locates a stored file.
type PutResult struct {
	Key string
	URL string
}

// Storage stores and removes uploaded files.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// Local stores files in a directory served under URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

// NewLocal creates a Local storage rooted at baseDir.
func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

// Put writes r under a random key that keeps the image extension.
func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	key, err := imageName(in.Filename)
	if err != nil {
		return PutResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(l.BaseDir, key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, fmt.Errorf("failed to create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, fmt.Errorf("failed to write %s: %w", key, err)
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

// Delete removes the file stored under key.
func (l *Local) Delete(_ context.Context, key string) error {
	key = filepath.Base(key)
	err := os.Remove(filepath.Join(l.BaseDir, key))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", key, ErrImageNotFound)
	}
	return err
}

// imageName returns a random file name keeping the lower-cased image
// extension of filename.
func imageName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedType)
	}
	return uuid.NewString() + ext, nil
}

func contentType(in PutInput) string {
	if in.ContentType != "" {
		return in.ContentType
	}
	return imageContentTypes[strings.ToLower(filepath.Ext(in.Filename))]
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
