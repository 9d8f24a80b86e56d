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

// Source resolves a stored measurement key to a local file the HDF5 reader
// can open. release must be called once the file is no longer needed.
type Source interface {
	Fetch(ctx context.Context, key string) (path string, release func(), err error)
	Store(ctx context.Context, key string, r io.Reader) error
	Remove(ctx context.Context, key string) error
}

// hdf5ContentType is the content type files are stored with
const hdf5ContentType = "application/x-hdf5"

// ErrInvalidKey is returned for keys that escape the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// LocalSource serves files from a directory on disk
type LocalSource struct {
	Dir string
}

// NewLocalSource creates a source rooted at dir
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{Dir: dir}
}

func (s *LocalSource) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if key == "" || clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, clean), nil
}

// Fetch returns the on-disk path of key. Nothing is copied so release is a no-op.
func (s *LocalSource) Fetch(_ context.Context, key string) (string, func(), error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return path, func() {}, nil
}

// Store writes r under key, replacing any previous file. The data goes to a
// temporary file first so readers never see a partial upload.
func (s *LocalSource) Store(_ context.Context, key string, r io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Remove deletes the file stored under key. Missing files are not an error.
func (s *LocalSource) Remove(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// S3Source downloads objects to temporary files
type S3Source struct {
	S3     S3Service
	TmpDir string
}

// NewS3Source creates a source backed by svc. Temporary files go to the
// system temp directory.
func NewS3Source(svc S3Service) *S3Source {
	return &S3Source{S3: svc}
}

// Fetch copies the object to a temporary file; release deletes it.
func (s *S3Source) Fetch(ctx context.Context, key string) (string, func(), error) {
	body, err := s.S3.OpenFile(ctx, key)
	if err != nil {
		return "", nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(s.TmpDir, "blsdata-"+uuid.New().String()[:8]+"-*.h5")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	release := func() { os.Remove(path) }

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		release()
		return "", nil, fmt.Errorf("failed to copy %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, release, nil
}

// Store uploads r under key
func (s *S3Source) Store(ctx context.Context, key string, r io.Reader) error {
	return s.S3.UploadFile(ctx, key, r, hdf5ContentType)
}

// Remove deletes the object stored under key
func (s *S3Source) Remove(ctx context.Context, key string) error {
	return s.S3.DeleteFile(ctx, key)
}
