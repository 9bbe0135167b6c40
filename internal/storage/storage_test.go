package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean name unchanged", input: "pitch-deck_v2.pdf", expected: "pitch-deck_v2.pdf"},
		{name: "spaces replaced", input: "my idea.txt", expected: "my_idea.txt"},
		{name: "path stripped", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows path stripped", input: `C:\docs\plan.docx`, expected: "plan.docx"},
		{name: "unicode replaced", input: "प्रस्ताव.pdf", expected: "________.pdf"},
		{name: "empty becomes upload", input: "", expected: "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	headers := req.MultipartForm.File["files"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestSaveUpload(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	header := multipartHeader(t, "business plan.txt", []byte("solar powered cold storage"))

	saved, err := store.SaveUpload(projectID, header)
	require.NoError(t, err)
	assert.Equal(t, "business_plan.txt", saved.Name)
	assert.NotEqual(t, saved.Name, saved.StoredName)
	assert.Equal(t, int64(len("solar powered cold storage")), saved.Size)

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "solar powered cold storage", string(data))

	// Stored under the project's directory.
	assert.Equal(t, projectID.String(), filepath.Base(filepath.Dir(saved.Path)))
}

func TestSaveUploadRejectsDisallowedType(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	header := multipartHeader(t, "malware.exe", []byte("nope"))
	_, err = store.SaveUpload(uuid.New(), header)
	assert.Error(t, err)
}

func TestSaveUploadUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	first, err := store.SaveUpload(projectID, multipartHeader(t, "plan.txt", []byte("v1")))
	require.NoError(t, err)
	second, err := store.SaveUpload(projectID, multipartHeader(t, "plan.txt", []byte("v2")))
	require.NoError(t, err)

	assert.NotEqual(t, first.StoredName, second.StoredName)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(uuid.New(), "../secrets.txt")
	assert.Error(t, err)
}

func TestOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	saved, err := store.SaveUpload(projectID, multipartHeader(t, "notes.md", []byte("# Idea")))
	require.NoError(t, err)

	f, err := store.Open(projectID, saved.StoredName)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "# Idea", string(data))
}
