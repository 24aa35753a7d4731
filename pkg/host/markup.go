package host

import (
	"html/template"
	"maps"
	"slices"
	"strings"

	"github.com/mchmarny/smartnav/pkg/menu"
)

// Tag renders a name element around content. Attributes are written in key
// order and their values escaped; attributes with invalid names are skipped.
// Content is written as is.
func Tag(name string, content template.HTML, attrs menu.Attrs) template.HTML {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)

	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if !validAttrName(k) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(attrs[k]))
		b.WriteByte('"')
	}

	b.WriteByte('>')
	b.WriteString(string(content))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')

	return template.HTML(b.String())
}

// Link renders an anchor to url. An href in attrs is replaced by url.
func Link(label template.HTML, url string, attrs menu.Attrs) template.HTML {
	return Tag("a", label, attrs.Merge(menu.Attrs{"href": url}))
}

// validAttrName follows the HTML attribute name grammar: no controls,
// whitespace, quotes, '>', '/' or '='.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= 0x20, r >= 0x7f && r <= 0x9f:
			return false
		case strings.ContainsRune(`"'>/=<`, r):
			return false
		}
	}
	return true
}
