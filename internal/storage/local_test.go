package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalClientSaveAndDelete(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	assert.NoError(t, err)

	path, err := client.Save("123_cv.pdf", strings.NewReader("%PDF-1.4 fake"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/resumes/123_cv.pdf", path)

	onDisk := filepath.Join(client.BaseDir, "123_cv.pdf")
	content, err := os.ReadFile(onDisk)
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(content))

	assert.NoError(t, client.Delete(path))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, client.Delete(path))
}

func TestMakeFileName(t *testing.T) {
	name := MakeFileName("My Resume (final).PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")

	// base name is truncated, extension preserved
	long := MakeFileName(strings.Repeat("a", 120) + ".docx")
	base := strings.TrimSuffix(long, ".docx")
	parts := strings.SplitN(base, "_", 2)
	assert.Len(t, parts, 2)
	assert.LessOrEqual(t, len(parts[1]), 40)
}
