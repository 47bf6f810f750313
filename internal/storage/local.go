package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient keeps resume files on the local filesystem under a base
// directory that is also served statically at /uploads.
type LocalClient struct {
	BaseDir string
}

// NewLocalClient ensures the base directory exists and returns the client.
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory: %w", err)
	}
	return &LocalClient{BaseDir: baseDir}, nil
}

// Save writes the file to disk and returns its public path.
func (l *LocalClient) Save(fileName string, data io.Reader) (string, error) {
	dst := filepath.Join(l.BaseDir, fileName)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create resume file: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close resume file: %w", err)
	}
	return "/uploads/resumes/" + fileName, nil
}

// Delete removes the stored file behind a public path.
func (l *LocalClient) Delete(path string) error {
	name := filepath.Base(strings.TrimPrefix(path, "/"))
	if name == "" || name == "." {
		return nil
	}
	err := os.Remove(filepath.Join(l.BaseDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
