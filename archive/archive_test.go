package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func makeArchive(t *testing.T, files map[string][]byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.epub")
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for n, data := range files {
		fw, err := w.Create(n)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return name
}

func openArchive(t *testing.T, files map[string][]byte) *Book {
	t.Helper()
	b, err := Open(makeArchive(t, files), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestReadFile(t *testing.T) {
	b := openArchive(t, map[string][]byte{
		"mimetype":      []byte("application/epub+zip"),
		"OPS/ch1.xhtml": []byte("<html/>"),
	})

	data, err := b.ReadFile("OPS/ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))

	data, err = b.ReadFile("/OPS/./ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))

	_, err = b.ReadFile("OPS/ch2.xhtml")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNames(t *testing.T) {
	b := openArchive(t, map[string][]byte{
		"img/page10.jpg": nil,
		"img/page2.jpg":  nil,
		"img/page1.jpg":  nil,
		"ComicInfo.xml":  nil,
	})
	assert.Equal(t, []string{"img/page1.jpg", "img/page2.jpg", "img/page10.jpg"}, b.Names("img/"))
	assert.Len(t, b.Names(""), 4)
}

func TestFetch(t *testing.T) {
	b := openArchive(t, map[string][]byte{
		"images/cover":  pngHeader,
		"text/ch1.html": []byte("<html><body>plain</body></html>"),
		"text/ch2.xhtml": []byte("<?xml version=\"1.0\" encoding=\"windows-1251\"?>\n" +
			"<html><body>\xcf\xf0\xe8\xe2\xe5\xf2</body></html>"),
		"data.bin": {0x00, 0x01, 0x02},
	})
	ctx := context.Background()

	r, err := b.Fetch(ctx, "images/cover", "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.MediaType)
	assert.Equal(t, pngHeader, r.Data)

	r, err = b.Fetch(ctx, "text/ch1.html", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "text/html", r.MediaType)
	assert.Equal(t, "<html><body>plain</body></html>", string(r.Data))

	r, err = b.Fetch(ctx, "text/ch2.xhtml", "application/xhtml+xml")
	require.NoError(t, err)
	assert.Contains(t, string(r.Data), "<body>Привет</body>")

	r, err = b.Fetch(ctx, "data.bin", "")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", r.MediaType)

	_, err = b.Fetch(ctx, "missing.xhtml", "")
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = b.Fetch(cancelled, "text/ch1.html", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenRefusesUnsafePaths(t *testing.T) {
	name := makeArchive(t, map[string][]byte{"../evil.xhtml": nil})
	_, err := Open(name, zap.NewNop())
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "absent.epub"), zap.NewNop())
	assert.ErrorContains(t, err, "unable to open archive")
}

func TestIsSafePath(t *testing.T) {
	assert.True(t, isSafePath("OPS/text/ch1.xhtml"))
	assert.True(t, isSafePath("a..b/c"))
	assert.False(t, isSafePath("/etc/passwd"))
	assert.False(t, isSafePath(`\windows`))
	assert.False(t, isSafePath("OPS/../../x"))
}
