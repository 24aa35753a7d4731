package menu

import (
	"strings"
)

// IconLeft places the icon before the label. Any other position places it after.
const IconLeft = "left"

// PathMatcher reports whether an item URL should count as current for the
// request path when the host's own predicate said no.
type PathMatcher func(itemURL, currentPath string) bool

// Options controls class names, icons and structure of a render pass.
type Options struct {
	MenuClass          string
	MenuHTML           Attrs
	MenuIcons          bool
	ItemClass          string
	SeparatorClass     string
	SubmenuParentClass string
	SubmenuClass       string
	SubmenuItemClass   string
	ActiveClass        string
	ActiveSubmenuClass string
	SubmenuIcons       bool
	SubmenuToggle      string
	IconHelper         string
	IconPrefix         string
	IconDefault        string
	IconPosition       string
	PathMatch          PathMatcher
	KeepDefaults       bool
}

// Option is a functional option for configuring a render pass.
type Option func(*Options)

// DefaultOptions returns the built-in option set.
//
// Default configuration:
//   - MenuClass: menu
//   - MenuIcons: true
//   - ItemClass: menu-item
//   - SeparatorClass: separator
//   - SubmenuParentClass: has-submenu
//   - SubmenuClass: submenu
//   - SubmenuItemClass: submenu-item
//   - ActiveClass: active
//   - ActiveSubmenuClass: open
//   - IconPrefix: "icon icon-"
//   - IconDefault: missing
//   - IconPosition: left
//   - PathMatch: PrefixMatch
func DefaultOptions() Options {
	return Options{
		MenuClass:          "menu",
		MenuHTML:           Attrs{},
		MenuIcons:          true,
		ItemClass:          "menu-item",
		SeparatorClass:     "separator",
		SubmenuParentClass: "has-submenu",
		SubmenuClass:       "submenu",
		SubmenuItemClass:   "submenu-item",
		ActiveClass:        "active",
		ActiveSubmenuClass: "open",
		IconPrefix:         "icon icon-",
		IconDefault:        "missing",
		IconPosition:       IconLeft,
		PathMatch:          PrefixMatch,
		KeepDefaults:       true,
	}
}

// ResolveOptions layers opts over DefaultOptions. When any option turns
// KeepDefaults off, opts are applied to an empty set instead and every unset
// field stays at its zero value.
func ResolveOptions(opts ...Option) Options {
	peek := Options{KeepDefaults: true}
	for _, opt := range opts {
		opt(&peek)
	}

	o := Options{}
	if peek.KeepDefaults {
		o = DefaultOptions()
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithKeepDefaults controls whether options are layered over the defaults.
func WithKeepDefaults(keep bool) Option {
	return func(o *Options) { o.KeepDefaults = keep }
}

// WithMenuClass sets the class of the root list.
func WithMenuClass(class string) Option {
	return func(o *Options) { o.MenuClass = class }
}

// WithMenuHTML sets extra attributes of the root list.
func WithMenuHTML(attrs Attrs) Option {
	return func(o *Options) { o.MenuHTML = attrs }
}

// WithMenuIcons toggles icons on top level items.
func WithMenuIcons(on bool) Option {
	return func(o *Options) { o.MenuIcons = on }
}

// WithItemClass sets the class of top level list items.
func WithItemClass(class string) Option {
	return func(o *Options) { o.ItemClass = class }
}

// WithSeparatorClass sets the class of separators.
func WithSeparatorClass(class string) Option {
	return func(o *Options) { o.SeparatorClass = class }
}

// WithSubmenuParentClass sets the class of list items holding a submenu.
func WithSubmenuParentClass(class string) Option {
	return func(o *Options) { o.SubmenuParentClass = class }
}

// WithSubmenuClass sets the class of nested lists.
func WithSubmenuClass(class string) Option {
	return func(o *Options) { o.SubmenuClass = class }
}

// WithSubmenuItemClass sets the class of list items inside a submenu.
func WithSubmenuItemClass(class string) Option {
	return func(o *Options) { o.SubmenuItemClass = class }
}

// WithActiveClass sets the class of current items and active groups.
func WithActiveClass(class string) Option {
	return func(o *Options) { o.ActiveClass = class }
}

// WithActiveSubmenuClass sets the class of the nested list of an active group.
func WithActiveSubmenuClass(class string) Option {
	return func(o *Options) { o.ActiveSubmenuClass = class }
}

// WithSubmenuIcons toggles icons inside submenus.
func WithSubmenuIcons(on bool) Option {
	return func(o *Options) { o.SubmenuIcons = on }
}

// WithSubmenuToggle sets markup appended to group labels.
func WithSubmenuToggle(markup string) Option {
	return func(o *Options) { o.SubmenuToggle = markup }
}

// WithIconHelper names a host capability that builds icon markup from an icon name.
func WithIconHelper(name string) Option {
	return func(o *Options) { o.IconHelper = name }
}

// WithIconPrefix sets the class prefix of generated icon tags.
func WithIconPrefix(prefix string) Option {
	return func(o *Options) { o.IconPrefix = prefix }
}

// WithIconDefault sets the icon used by items without one.
func WithIconDefault(name string) Option {
	return func(o *Options) { o.IconDefault = name }
}

// WithIconPosition sets where icons go relative to the label.
func WithIconPosition(pos string) Option {
	return func(o *Options) { o.IconPosition = pos }
}

// WithPathMatch sets the fallback used to mark leaves current by request path.
// A nil matcher disables the fallback.
func WithPathMatch(m PathMatcher) Option {
	return func(o *Options) { o.PathMatch = m }
}

// PrefixMatch reports whether itemURL is currentPath or one of its parent paths.
// Query strings, fragments and trailing slashes are ignored; anchors and the
// site root never match.
func PrefixMatch(itemURL, currentPath string) bool {
	u := cleanPath(itemURL)
	if u == "" || strings.HasPrefix(itemURL, "#") {
		return false
	}

	p := cleanPath(currentPath)
	return p == u || strings.HasPrefix(p, u+"/")
}

// cleanPath strips query, fragment and trailing slashes.
func cleanPath(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "/")
}
