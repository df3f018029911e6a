// Package images provides poster and avatar storage, upload naming, and
// BlurHash placeholders.
package images

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage manages image filesystem operations for one image kind.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewPosterStorage creates a Storage for movie posters.
// basePath should be the uploads directory (e.g., ~/CineSuggest/uploads).
// Posters are stored in {basePath}/posters/.
func NewPosterStorage(basePath string) (*Storage, error) {
	return NewStorageWithSubdir(basePath, "posters")
}

// NewAvatarStorage creates a Storage for user avatars.
// Avatars are stored in {basePath}/avatars/.
func NewAvatarStorage(basePath string) (*Storage, error) {
	return NewStorageWithSubdir(basePath, "avatars")
}

// NewStorageWithSubdir creates a Storage instance with a custom
// subdirectory. Images are stored in {basePath}/{subdir}/.
func NewStorageWithSubdir(basePath, subdir string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if subdir == "" {
		return nil, fmt.Errorf("subdirectory cannot be empty")
	}

	storagePath := filepath.Join(basePath, subdir)

	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", subdir, err)
	}

	return &Storage{
		basePath: storagePath,
	}, nil
}

// Save stores image data under the given filename.
// The filename must come from UniqueFilename or a known default; path
// separators are rejected.
func (s *Storage) Save(filename string, imgData []byte) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(filename), imgData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}

// Get retrieves image data by filename.
func (s *Storage) Get(filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks if an image with the given filename exists.
func (s *Storage) Exists(filename string) bool {
	if validateFilename(filename) != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// Delete removes an image. Deleting a missing file is not an error.
func (s *Storage) Delete(filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(filename)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}

	return nil
}

// Hash computes the SHA256 hash of an image.
// Returns a hex-encoded string for ETag/cache validation.
func (s *Storage) Hash(filename string) (string, error) {
	data, err := s.Get(filename)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Path returns the full filesystem path for a stored image.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

func validateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if filename != filepath.Base(filename) {
		return fmt.Errorf("invalid filename: %s", filename)
	}
	return nil
}
