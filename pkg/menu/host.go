package menu

import (
	"errors"
	"fmt"
	"html/template"
)

// ErrUnsupported is returned when a named lookup, icon helper or delegated call
// targets a capability the host does not provide.
var ErrUnsupported = errors.New("unsupported host capability")

// Host is the view context a Renderer draws on. It answers whether a URL is the
// current page and builds the markup fragments the menu is assembled from.
type Host interface {
	// IsCurrentPage reports whether url addresses the page being rendered.
	IsCurrentPage(url string) bool

	// LinkTo builds an anchor around label pointing at url.
	// Label is already safe markup.
	LinkTo(label template.HTML, url string, attrs Attrs) template.HTML

	// ContentTag builds a tagName element wrapping content.
	// Content is already safe markup.
	ContentTag(tagName string, content template.HTML, attrs Attrs) template.HTML
}

// Caller is implemented by hosts that expose named capabilities. It backs
// named lookups, the icon helper and fallback delegation.
type Caller interface {
	// Call invokes the capability called name. Implementations return an error
	// wrapping ErrUnsupported when no such capability exists.
	Call(name string, args ...any) (any, error)
}

// PathProvider is implemented by hosts that know the path of the current request.
type PathProvider interface {
	CurrentPath() string
}

// call dispatches name on h, failing when h does not expose named capabilities.
func call(h Host, name string, args ...any) (any, error) {
	c, ok := h.(Caller)
	if !ok {
		return nil, fmt.Errorf("%w: host does not dispatch %q", ErrUnsupported, name)
	}

	v, err := c.Call(name, args...)
	if err != nil {
		return nil, fmt.Errorf("calling %q: %w", name, err)
	}

	return v, nil
}
