// Package storage stores uploaded resume files. The rest of the system only
// ever sees the returned path string and later asks for its deletion.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Client persists an uploaded binary and deletes it again by path.
type Client interface {
	// Save writes the data under fileName and returns the stored path.
	Save(fileName string, data io.Reader) (string, error)
	// Delete removes a previously stored file. Deleting a missing file is not an error.
	Delete(path string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// MakeFileName builds a collision-resistant stored name from the uploaded
// original: unix timestamp plus a sanitized, truncated base name.
func MakeFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = unsafeChars.ReplaceAllString(base, "_")
	if len(base) > 40 {
		base = base[:40]
	}
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
}

// FromEnv picks the resume storage backend: Google Cloud Storage when
// RESUME_BUCKET is set, local disk otherwise.
func FromEnv() (Client, error) {
	if bucket := os.Getenv("RESUME_BUCKET"); bucket != "" {
		return NewCloudClient(bucket)
	}
	dir := os.Getenv("RESUME_DIR")
	if dir == "" {
		dir = filepath.Join("uploads", "resumes")
	}
	return NewLocalClient(dir)
}
