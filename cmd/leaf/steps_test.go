package main

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leaf/archive"
	"leaf/manifest"
	"leaf/navigation"
	"leaf/reader"
	"leaf/spineitem"
	"leaf/utils/debug"
)

func TestParseStep(t *testing.T) {
	valid := []string{
		"next", "prev", "left", "right", "top", "bottom",
		"item:3", "item:chapter-1", "page:2:0", "page:ch1:4",
		"cfi:epubcfi(/6/4[ch2]!/4/2/1:10)", "url:text/ch1.xhtml#note",
		"pos:100,0", "pos:-200.5,10", "resize:800x600",
	}
	for _, s := range valid {
		st, err := parseStep(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, st.text)
		assert.NotNil(t, st.run, s)
	}

	invalid := []string{
		"", "forward", "item:", "page:1", "page:1:x", "page:1:-1",
		"cfi:", "url:", "pos:1", "pos:a,b", "resize:800", "resize:0x600",
	}
	for _, s := range invalid {
		_, err := parseStep(s)
		assert.Error(t, err, s)
	}
}

func TestItemRef(t *testing.T) {
	ref := itemRef("12")
	assert.Equal(t, 12, ref.Index)
	assert.Empty(t, ref.ID)

	ref = itemRef("ch12")
	assert.Equal(t, "ch12", ref.ID)
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("1200X800")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, w)
	assert.Equal(t, 800.0, h)

	_, _, err = parseSize("1200")
	assert.Error(t, err)
}

func TestBookID(t *testing.T) {
	assert.Equal(t, "urn:isbn:1", bookID(&manifest.Manifest{ID: "urn:isbn:1"}, "book.epub"))

	a := bookID(&manifest.Manifest{}, "/books/a.epub")
	b := bookID(&manifest.Manifest{}, "/books/b.epub")
	assert.True(t, strings.HasPrefix(a, "urn:uuid:"), a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, bookID(&manifest.Manifest{}, "/books/a.epub"))
}

func writeEPUB(t *testing.T, files map[string]string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	// mimetype goes first and is never compressed
	mt, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	require.NoError(t, err)
	_, err = mt.Write([]byte("application/epub+zip"))
	require.NoError(t, err)
	for n, content := range files {
		fw, err := w.Create(n)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return name
}

const testOPF = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:0b6f8e0c-2222-4f1e-8a43-000000000002</dc:identifier>
    <dc:title>Steps</dc:title>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

func testBook(t *testing.T) string {
	return writeEPUB(t, map[string]string{
		"META-INF/container.xml": `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OPS/package.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`,
		"OPS/package.opf": testOPF,
		"OPS/nav.xhtml": `<html xmlns:epub="http://www.idpf.org/2007/ops"><body><nav epub:type="toc"><ol>
<li><a href="ch1.xhtml">One</a></li><li><a href="ch2.xhtml#second">Two</a></li></ol></nav></body></html>`,
		"OPS/ch1.xhtml": `<html><body><p>` + strings.Repeat("a", 80) + `</p></body></html>`,
		"OPS/ch2.xhtml": `<html><body><p>` + strings.Repeat("b", 40) + `</p><p id="second">` + strings.Repeat("c", 40) + `</p></body></html>`,
	})
}

func openTestReader(t *testing.T, view navigation.ViewportRenderer) (*archive.Book, *reader.Reader) {
	t.Helper()
	book, err := archive.Open(testBook(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { book.Close() })

	// 10 characters per line and 4 lines per page: ch1 and ch2 take 2 pages each
	opts := reader.DefaultOptions(100, 100)
	opts.Metrics = spineitem.Metrics{CharWidth: 10, LineHeight: 25}
	opts.Loader.Window = 2
	r, err := reader.New(book, opts, view, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return book, r
}

func TestNavigate(t *testing.T) {
	view := &viewport{}
	_, r := openTestReader(t, view)

	steps, err := parseSteps([]string{"next", "next", "top", "url:OPS/ch2.xhtml#second", "prev", "item:0", "page:ch2:1"})
	require.NoError(t, err)

	tw := debug.NewTreeWriter()
	require.NoError(t, navigate(context.Background(), tw, r, view, steps))

	out := tw.String()
	assert.Contains(t, out, "top: ignored")
	assert.Contains(t, out, "position: (100,0)")
	assert.Contains(t, out, "position: (300,0)")
	assert.Contains(t, out, "location: \"epubcfi(/6/4[ch2]!")

	nav := r.Navigation()
	assert.Equal(t, 1, nav.SpineItem)
	assert.Equal(t, 300.0, nav.Position.X)
	assert.Positive(t, view.applied)
}

func TestInspect(t *testing.T) {
	book, r := openTestReader(t, nil)
	require.NoError(t, r.LoadAll(context.Background()))

	tw := debug.NewTreeWriter()
	inspect(tw, book, r)

	out := tw.String()
	assert.Contains(t, out, "book: \"Steps\"")
	assert.Contains(t, out, "0 ch1")
	assert.Contains(t, out, "1 ch2")
	assert.Contains(t, out, "pages: 2")
	assert.Contains(t, out, "One: \"OPS/ch1.xhtml\"")
}
