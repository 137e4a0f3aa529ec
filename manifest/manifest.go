// Package manifest loads EPUB package documents: reading order, resources,
// book level rendition properties and table of contents.
package manifest

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"

	"leaf/common"
)

const containerPath = "META-INF/container.xml"

var ErrNoRootfile = errors.New("container does not reference package document")

// Source gives access to files of the book container by their full path.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// Item is a single entry of the reading order.
type Item struct {
	ID        string
	Href      string // full path inside container
	MediaType string
	Linear    bool

	RenditionLayout common.RenditionLayout
	PageSpread      common.PageSpread
}

// Resource is any manifest entry.
type Resource struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// TOCEntry is a table of contents node.
type TOCEntry struct {
	Title    string
	Href     string
	Children []TOCEntry
}

type Manifest struct {
	ID       string
	Title    string
	Language string
	// path of the package document inside container
	PackagePath string

	ReadingDirection common.ReadingDirection
	RenditionLayout  common.RenditionLayout
	Spread           common.SpreadMode

	Items     []Item
	Resources []Resource
	TOC       []TOCEntry
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	return doc
}

// Load reads container.xml, package document it points to and table of
// contents.
func Load(src Source, log *zap.Logger) (*Manifest, error) {
	data, err := src.ReadFile(containerPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read container: %w", err)
	}
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse container: %w", err)
	}
	var opfPath string
	for _, rf := range doc.FindElements("//rootfiles/rootfile") {
		mt := rf.SelectAttrValue("media-type", "")
		if p := rf.SelectAttrValue("full-path", ""); p != "" && (mt == "" || mt == "application/oebps-package+xml") {
			opfPath = p
			break
		}
	}
	if opfPath == "" {
		return nil, ErrNoRootfile
	}

	data, err = src.ReadFile(opfPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read package document: %w", err)
	}
	m, err := Parse(opfPath, data, log)
	if err != nil {
		return nil, err
	}
	m.loadTOC(src, log)
	return m, nil
}

// Parse builds manifest from package document located at opfPath.
func Parse(opfPath string, data []byte, log *zap.Logger) (*Manifest, error) {
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse package document: %w", err)
	}
	pkg := doc.SelectElement("package")
	if pkg == nil {
		return nil, fmt.Errorf("package document %s has no package element", opfPath)
	}

	m := &Manifest{
		PackagePath:     opfPath,
		RenditionLayout: common.RenditionLayoutReflowable,
		Spread:          common.SpreadModeAuto,
	}
	m.parseMetadata(pkg, log)

	base := path.Dir(opfPath)
	byID := make(map[string]Resource)
	if el := pkg.SelectElement("manifest"); el != nil {
		for _, it := range el.SelectElements("item") {
			r := Resource{
				ID:         it.SelectAttrValue("id", ""),
				Href:       resolveHref(base, it.SelectAttrValue("href", "")),
				MediaType:  it.SelectAttrValue("media-type", ""),
				Properties: strings.Fields(it.SelectAttrValue("properties", "")),
			}
			if r.ID == "" || r.Href == "" {
				log.Warn("Manifest item without id or href, ignoring", zap.String("id", r.ID))
				continue
			}
			byID[r.ID] = r
			m.Resources = append(m.Resources, r)
		}
	}

	spine := pkg.SelectElement("spine")
	if spine == nil {
		return nil, fmt.Errorf("package document %s has no spine", opfPath)
	}
	switch spine.SelectAttrValue("page-progression-direction", "") {
	case "rtl":
		m.ReadingDirection = common.ReadingDirectionRtl
	case "ltr":
		m.ReadingDirection = common.ReadingDirectionLtr
	default:
		m.ReadingDirection = directionFromLanguage(m.Language)
	}

	for _, ref := range spine.SelectElements("itemref") {
		idref := ref.SelectAttrValue("idref", "")
		r, ok := byID[idref]
		if !ok {
			log.Warn("Spine references unknown manifest item, ignoring", zap.String("idref", idref))
			continue
		}
		item := Item{
			ID:              r.ID,
			Href:            r.Href,
			MediaType:       r.MediaType,
			Linear:          ref.SelectAttrValue("linear", "yes") != "no",
			RenditionLayout: m.RenditionLayout,
		}
		if strings.HasPrefix(r.MediaType, "image/") {
			item.RenditionLayout = common.RenditionLayoutPrePaginated
		}
		for _, p := range strings.Fields(ref.SelectAttrValue("properties", "")) {
			switch strings.TrimPrefix(p, "rendition:") {
			case "layout-pre-paginated":
				item.RenditionLayout = common.RenditionLayoutPrePaginated
			case "layout-reflowable":
				item.RenditionLayout = common.RenditionLayoutReflowable
			case "page-spread-left":
				item.PageSpread = common.PageSpreadLeft
			case "page-spread-right":
				item.PageSpread = common.PageSpreadRight
			case "page-spread-center":
				item.PageSpread = common.PageSpreadCenter
			}
		}
		m.Items = append(m.Items, item)
	}
	return m, nil
}

func (m *Manifest) parseMetadata(pkg *etree.Element, log *zap.Logger) {
	md := pkg.SelectElement("metadata")
	if md == nil {
		log.Warn("Package document has no metadata")
		return
	}
	uid := pkg.SelectAttrValue("unique-identifier", "")
	for _, el := range md.ChildElements() {
		switch el.Tag {
		case "identifier":
			if m.ID == "" || el.SelectAttrValue("id", "") == uid {
				m.ID = strings.TrimSpace(el.Text())
			}
		case "title":
			if m.Title == "" {
				m.Title = strings.TrimSpace(el.Text())
			}
		case "language":
			if m.Language == "" {
				m.Language = strings.TrimSpace(el.Text())
			}
		case "meta":
			value := strings.TrimSpace(el.Text())
			switch el.SelectAttrValue("property", "") {
			case "rendition:layout":
				if value == "pre-paginated" {
					m.RenditionLayout = common.RenditionLayoutPrePaginated
				}
			case "rendition:spread":
				m.Spread = spreadFromRendition(value)
			}
		}
	}
}

func spreadFromRendition(value string) common.SpreadMode {
	switch value {
	case "none":
		return common.SpreadModeNone
	case "both", "portrait":
		return common.SpreadModeBoth
	default:
		// landscape and auto
		return common.SpreadModeAuto
	}
}

var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
}

// directionFromLanguage guesses reading direction from the book language
// script.
func directionFromLanguage(lang string) common.ReadingDirection {
	if lang == "" {
		return common.ReadingDirectionLtr
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return common.ReadingDirectionLtr
	}
	if script, _ := tag.Script(); rtlScripts[script.String()] {
		return common.ReadingDirectionRtl
	}
	return common.ReadingDirectionLtr
}

func resolveHref(base, href string) string {
	if href == "" {
		return ""
	}
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	if base == "." || strings.HasPrefix(href, "/") {
		return strings.TrimPrefix(path.Clean(href), "/")
	}
	return path.Join(base, href)
}

// ItemByURL finds reading item matching path of u, query and fragment are
// ignored. Relative and absolute forms are both accepted as long as one is
// a path suffix of the other.
func (m *Manifest) ItemByURL(u string) (int, bool) {
	p := u
	if parsed, err := url.Parse(u); err == nil {
		p = parsed.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return -1, false
	}
	for i, it := range m.Items {
		if it.Href == p {
			return i, true
		}
	}
	for i, it := range m.Items {
		if strings.HasSuffix(p, "/"+it.Href) || strings.HasSuffix(it.Href, "/"+p) {
			return i, true
		}
	}
	return -1, false
}

// ItemByID returns index of the reading item with given id.
func (m *Manifest) ItemByID(id string) (int, bool) {
	for i, it := range m.Items {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Fragment returns anchor part of u, if any.
func Fragment(u string) string {
	if parsed, err := url.Parse(u); err == nil {
		return parsed.Fragment
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		return u[i+1:]
	}
	return ""
}

// resourceWithProperty returns first manifest entry having property prop.
func (m *Manifest) resourceWithProperty(prop string) (Resource, bool) {
	for _, r := range m.Resources {
		for _, p := range r.Properties {
			if p == prop {
				return r, true
			}
		}
	}
	return Resource{}, false
}

func (m *Manifest) resourceByMediaType(mt string) (Resource, bool) {
	for _, r := range m.Resources {
		if r.MediaType == mt {
			return r, true
		}
	}
	return Resource{}, false
}
