// Package archive gives read access to EPUB/CBZ containers on top of
// "github.com/hidez8891/zip".
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

var ErrNotFound = errors.New("file not found in archive")

// Resource is fetched content of a single container file.
type Resource struct {
	Href      string
	MediaType string
	Data      []byte
}

// Book is opened container. It is safe for concurrent use.
type Book struct {
	path  string
	r     *fixzip.ReadCloser
	files map[string]*fixzip.File
	log   *zap.Logger
}

// Open opens container and indexes its files. Containers with entries
// escaping the root (absolute or having ".." components) are refused.
func Open(name string, log *zap.Logger) (*Book, error) {
	r, err := fixzip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive %s: %w", name, err)
	}

	b := &Book{
		path:  name,
		r:     r,
		files: make(map[string]*fixzip.File, len(r.File)),
		log:   log.Named("archive"),
	}
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			r.Close()
			return nil, fmt.Errorf("archive entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		b.files[f.Name] = f
	}
	b.log.Debug("Archive opened", zap.String("path", name), zap.Int("files", len(b.files)))
	return b, nil
}

func (b *Book) Path() string {
	return b.path
}

func (b *Book) Close() error {
	return b.r.Close()
}

// ReadFile returns content of the file with full path name.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f, ok := b.files[strings.TrimPrefix(path.Clean(name), "/")]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}
	return data, nil
}

// Names lists files with given prefix in natural order.
func (b *Book) Names(prefix string) []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Fetch reads resource. When mediaType is empty or generic it is detected
// from content. Text documents are converted to UTF-8.
func (b *Book) Fetch(ctx context.Context, href, mediaType string) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := b.ReadFile(href)
	if err != nil {
		return nil, err
	}

	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = sniff(href, data)
	}
	if isText(mediaType) {
		if data, err = toUTF8(data, mediaType); err != nil {
			return nil, fmt.Errorf("unable to decode %s: %w", href, err)
		}
	}
	return &Resource{Href: href, MediaType: mediaType, Data: data}, nil
}

func sniff(href string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	switch strings.ToLower(path.Ext(href)) {
	case ".xhtml", ".xht":
		return "application/xhtml+xml"
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

func isText(mediaType string) bool {
	return strings.HasPrefix(mediaType, "text/") ||
		strings.HasSuffix(mediaType, "+xml") ||
		mediaType == "application/xml"
}

var xmlEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*encoding=["']([A-Za-z0-9._:-]+)["']`)

// toUTF8 honours XML declaration first, then whatever HTML rules detect.
func toUTF8(data []byte, mediaType string) ([]byte, error) {
	if m := xmlEncoding.FindSubmatch(data); m != nil {
		if enc, name := charset.Lookup(string(m[1])); enc != nil {
			if name == "utf-8" {
				return data, nil
			}
			return enc.NewDecoder().Bytes(data)
		}
	}
	r, err := charset.NewReader(bytes.NewReader(data), mediaType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
