package upload_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karuna-foundation/outreach-api/internal/upload"
)

// fileHeader builds a real *multipart.FileHeader by writing a multipart
// body and parsing it back, the same path a request would take.
func fileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func newStore(t *testing.T) *upload.Store {
	t.Helper()
	store, err := upload.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAcceptsPDF(t *testing.T) {
	store := newStore(t)
	fh := fileHeader(t, "adhaarCard", "adhaar.pdf", "application/pdf", []byte("%PDF-1.4 fake"))

	handle, err := store.Save(fh)
	require.NoError(t, err)
	assert.NotEmpty(t, handle)
	assert.Equal(t, ".pdf", filepath.Ext(handle))

	stored, err := os.ReadFile(filepath.Join(store.Dir, handle))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), stored)
}

func TestSaveGeneratesDistinctHandles(t *testing.T) {
	store := newStore(t)

	first, err := store.Save(fileHeader(t, "a", "doc.pdf", "application/pdf", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "b", "doc.pdf", "application/pdf", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeterministicNamesCanBeInjected(t *testing.T) {
	store := newStore(t)
	n := 0
	store.NewName = func(ext string) string {
		n++
		return fmt.Sprintf("fixed-%d%s", n, ext)
	}

	handle, err := store.Save(fileHeader(t, "a", "photo.png", "image/png", []byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "fixed-1.png", handle)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := newStore(t)
	fh := fileHeader(t, "marksheet", "malware.exe", "application/pdf", []byte("MZ"))

	_, err := store.Save(fh)

	var fileErr *upload.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, upload.TypeRejected, fileErr.Kind)
	assert.Equal(t, "malware.exe", fileErr.Filename)

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected file must not be written")
}

func TestSaveRejectsDisallowedContentType(t *testing.T) {
	store := newStore(t)
	fh := fileHeader(t, "marksheet", "sheet.pdf", "application/x-msdownload", []byte("MZ"))

	_, err := store.Save(fh)

	var fileErr *upload.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, upload.TypeRejected, fileErr.Kind)
}

func TestSaveRejectsOversizeFile(t *testing.T) {
	store := newStore(t)
	store.MaxSize = 16

	fh := fileHeader(t, "essayScan", "essay.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 64))

	_, err := store.Save(fh)

	var fileErr *upload.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, upload.TooLarge, fileErr.Kind)
	assert.Equal(t, "file essay.jpg is too large", fileErr.Error())

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Known gap: a rejection does not roll back files accepted earlier in
// the same request. This pins the current behavior so a future cleanup
// change shows up as a deliberate test update.
func TestEarlierFileOrphanedWhenLaterFileRejected(t *testing.T) {
	store := newStore(t)

	handle, err := store.Save(fileHeader(t, "rationCard", "ration.png", "image/png", []byte("png")))
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "marksheet", "marks.exe", "application/pdf", []byte("MZ")))
	var fileErr *upload.FileError
	require.True(t, errors.As(err, &fileErr))

	_, statErr := os.Stat(filepath.Join(store.Dir, handle))
	assert.NoError(t, statErr, "accepted file stays on disk after a later rejection")
}
