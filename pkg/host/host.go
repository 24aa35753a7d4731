// Package host provides a menu.Host bound to one HTTP request.
package host

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/mchmarny/smartnav/pkg/menu"
)

// Func is a named capability exposed to menus through lookups, icon helpers
// and delegated calls.
type Func func(args ...any) (any, error)

// Funcs maps capability names to their implementation.
type Funcs map[string]Func

// Context is the view context of one request.
type Context struct {
	url   *url.URL
	funcs Funcs
}

// New creates a context for the page at target, which may carry a query string.
func New(target string, funcs Funcs) (*Context, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", target, err)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	return &Context{url: u, funcs: funcs}, nil
}

// FromRequest creates a context for r. Server requests carry their host in
// r.Host rather than r.URL, so it is copied over.
func FromRequest(r *http.Request, funcs Funcs) *Context {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	return &Context{url: &u, funcs: funcs}
}

// CurrentPath returns the path of the current page.
func (c *Context) CurrentPath() string {
	return c.url.Path
}

// IsCurrentPage reports whether target addresses the current page. Paths are
// compared ignoring trailing slashes; a query in target must match exactly.
// Anchors and links naming another host never match, nor do links naming any
// host when the current host is unknown.
func (c *Context) IsCurrentPage(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	if u.Host != "" && !strings.EqualFold(u.Host, c.url.Host) {
		return false
	}

	if u.RawQuery != "" && u.RawQuery != c.url.RawQuery {
		return false
	}

	return trimSlash(u.Path) == trimSlash(c.url.Path)
}

// LinkTo implements menu.Host.
func (c *Context) LinkTo(label template.HTML, target string, attrs menu.Attrs) template.HTML {
	return Link(label, target, attrs)
}

// ContentTag implements menu.Host.
func (c *Context) ContentTag(name string, content template.HTML, attrs menu.Attrs) template.HTML {
	return Tag(name, content, attrs)
}

// Call runs the named capability.
func (c *Context) Call(name string, args ...any) (any, error) {
	fn, ok := c.funcs[name]
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: %s", menu.ErrUnsupported, name)
	}
	return fn(args...)
}

func trimSlash(p string) string {
	if p == "" {
		return "/"
	}
	if t := strings.TrimRight(p, "/"); t != "" {
		return t
	}
	return "/"
}
