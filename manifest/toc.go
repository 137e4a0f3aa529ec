package manifest

import (
	"path"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// loadTOC fills table of contents from EPUB3 navigation document, falling
// back to NCX. Missing or broken TOC is not an error.
func (m *Manifest) loadTOC(src Source, log *zap.Logger) {
	if r, ok := m.resourceWithProperty("nav"); ok {
		if toc, err := parseNav(src, r.Href); err == nil && len(toc) > 0 {
			m.TOC = toc
			return
		} else if err != nil {
			log.Debug("Unable to parse navigation document", zap.String("href", r.Href), zap.Error(err))
		}
	}
	if r, ok := m.resourceByMediaType("application/x-dtbncx+xml"); ok {
		toc, err := parseNCX(src, r.Href)
		if err != nil {
			log.Debug("Unable to parse NCX", zap.String("href", r.Href), zap.Error(err))
			return
		}
		m.TOC = toc
	}
}

func parseNav(src Source, href string) ([]TOCEntry, error) {
	data, err := src.ReadFile(href)
	if err != nil {
		return nil, err
	}
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	base := path.Dir(href)
	for _, nav := range doc.FindElements("//nav") {
		if !strings.Contains(nav.SelectAttrValue("epub:type", nav.SelectAttrValue("type", "")), "toc") {
			continue
		}
		if ol := nav.SelectElement("ol"); ol != nil {
			return navList(ol, base), nil
		}
	}
	return nil, nil
}

func navList(ol *etree.Element, base string) []TOCEntry {
	var out []TOCEntry
	for _, li := range ol.SelectElements("li") {
		var e TOCEntry
		if a := li.SelectElement("a"); a != nil {
			e.Title = collapse(a.Text() + textOf(a))
			e.Href = resolveLink(base, a.SelectAttrValue("href", ""))
		} else if span := li.SelectElement("span"); span != nil {
			e.Title = collapse(span.Text() + textOf(span))
		}
		if sub := li.SelectElement("ol"); sub != nil {
			e.Children = navList(sub, base)
		}
		out = append(out, e)
	}
	return out
}

func parseNCX(src Source, href string) ([]TOCEntry, error) {
	data, err := src.ReadFile(href)
	if err != nil {
		return nil, err
	}
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	navMap := doc.FindElement("//navMap")
	if navMap == nil {
		return nil, nil
	}
	return navPoints(navMap, path.Dir(href)), nil
}

func navPoints(parent *etree.Element, base string) []TOCEntry {
	var out []TOCEntry
	for _, np := range parent.SelectElements("navPoint") {
		e := TOCEntry{Children: navPoints(np, base)}
		if t := np.FindElement("navLabel/text"); t != nil {
			e.Title = collapse(t.Text())
		}
		if c := np.SelectElement("content"); c != nil {
			e.Href = resolveLink(base, c.SelectAttrValue("src", ""))
		}
		out = append(out, e)
	}
	return out
}

// resolveLink resolves href against base keeping its fragment.
func resolveLink(base, href string) string {
	frag := Fragment(href)
	p := resolveHref(base, href)
	if frag != "" {
		return p + "#" + frag
	}
	return p
}

func textOf(el *etree.Element) string {
	var sb strings.Builder
	for _, ch := range el.ChildElements() {
		sb.WriteString(ch.Text())
		sb.WriteString(textOf(ch))
		sb.WriteString(ch.Tail())
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
