package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStore(t *testing.T) {
	t.Run("should store and read back a document", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		content := "%PDF-1.7 test"
		err = store.Put(context.Background(), "ocr/tenant/doc.pdf", "application/pdf",
			strings.NewReader(content), int64(len(content)))
		require.NoError(t, err)

		reader, err := store.Get(context.Background(), "ocr/tenant/doc.pdf")
		require.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("should delete a document", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(context.Background(), "a/b.pdf", "application/pdf",
			strings.NewReader("x"), 1))
		require.NoError(t, store.Delete(context.Background(), "a/b.pdf"))

		_, err = store.Get(context.Background(), "a/b.pdf")
		assert.Error(t, err)
	})

	t.Run("should tolerate deleting a missing key", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Delete(context.Background(), "missing.pdf"))
	})

	t.Run("should reject keys escaping the base directory", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		err = store.Put(context.Background(), "../outside.pdf", "application/pdf",
			strings.NewReader("x"), 1)
		assert.Error(t, err)

		_, err = store.Get(context.Background(), "../../etc/passwd")
		assert.Error(t, err)
	})
}
