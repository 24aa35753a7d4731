package menu

import (
	"fmt"
	"html/template"
	"strings"
)

// Renderer turns an item tree into nested list markup for one host.
// A Renderer holds no state beyond its inputs and may be rendered repeatedly.
type Renderer struct {
	host  Host
	items Items
	opts  Options
}

// NewRenderer creates a renderer for items with options resolved over the defaults.
func NewRenderer(h Host, items Items, opts ...Option) *Renderer {
	return &Renderer{
		host:  h,
		items: items,
		opts:  ResolveOptions(opts...),
	}
}

// Options returns the resolved options of the render pass.
func (r *Renderer) Options() Options {
	return r.opts
}

// Call forwards a named capability to the host.
func (r *Renderer) Call(name string, args ...any) (any, error) {
	return call(r.host, name, args...)
}

// Render builds the root list. The first resolution error aborts the render.
func (r *Renderer) Render() (template.HTML, error) {
	if r.host == nil {
		return "", fmt.Errorf("renderer has no host")
	}

	var b strings.Builder
	for _, e := range r.items.Sorted() {
		frag, err := r.item(e.Item, r.opts.MenuIcons, false)
		if err != nil {
			return "", fmt.Errorf("item %q: %w", e.Key, err)
		}
		b.WriteString(string(frag))
	}

	attrs := r.opts.MenuHTML.Merge(nil)
	if r.opts.MenuClass != "" {
		attrs["class"] = r.opts.MenuClass
	}

	return r.host.ContentTag("ul", template.HTML(b.String()), attrs), nil
}

// ShouldRender evaluates the If guard, or the Unless guard when If is not set.
func (r *Renderer) ShouldRender(item Item) (bool, error) {
	switch {
	case item.If.IsSet():
		v, err := item.If.Resolve(r.host)
		if err != nil {
			return false, fmt.Errorf("if: %w", err)
		}
		return truthy(v), nil
	case item.Unless.IsSet():
		v, err := item.Unless.Resolve(r.host)
		if err != nil {
			return false, fmt.Errorf("unless: %w", err)
		}
		return !truthy(v), nil
	default:
		return true, nil
	}
}

// URL returns the link target of item. Without a URL the item links to the
// anchor of its ID; without either, ok is false and the item is not a link.
func (r *Renderer) URL(item Item) (url string, ok bool, err error) {
	if item.URL.IsSet() {
		v, err := item.URL.Resolve(r.host)
		if err != nil {
			return "", false, fmt.Errorf("url: %w", err)
		}
		url = text(v)
		return url, url != "", nil
	}

	if item.ID != "" {
		return "#" + item.ID, true, nil
	}

	return "", false, nil
}

// IsCurrentPage reports whether item links to the current page.
func (r *Renderer) IsCurrentPage(item Item) (bool, error) {
	url, ok, err := r.URL(item)
	if err != nil {
		return false, err
	}
	return r.matches(item, url, ok), nil
}

// IsActiveGroup reports whether item or any visible descendant is the current page.
func (r *Renderer) IsActiveGroup(item Item) (bool, error) {
	current, err := r.IsCurrentPage(item)
	if err != nil || current {
		return current, err
	}
	return r.activeDescendant(item)
}

func (r *Renderer) matches(item Item, url string, ok bool) bool {
	if !ok {
		return false
	}

	if r.host.IsCurrentPage(url) {
		return true
	}

	if item.IsGroup() || r.opts.PathMatch == nil {
		return false
	}

	if p, isProvider := r.host.(PathProvider); isProvider {
		return r.opts.PathMatch(url, p.CurrentPath())
	}

	return false
}

// activeDescendant checks the children of item first, then their subtrees.
// Separators and suppressed children take no part.
func (r *Renderer) activeDescendant(item Item) (bool, error) {
	var visible []Item
	for _, e := range item.Children {
		if e.Item.Separator {
			continue
		}
		ok, err := r.ShouldRender(e.Item)
		if err != nil {
			return false, fmt.Errorf("item %q: %w", e.Key, err)
		}
		if ok {
			visible = append(visible, e.Item)
		}
	}

	for _, child := range visible {
		current, err := r.IsCurrentPage(child)
		if err != nil || current {
			return current, err
		}
	}

	for _, child := range visible {
		active, err := r.activeDescendant(child)
		if err != nil || active {
			return active, err
		}
	}

	return false, nil
}

func (r *Renderer) item(item Item, icons, nested bool) (template.HTML, error) {
	if item.Separator {
		return r.separator(item), nil
	}

	ok, err := r.ShouldRender(item)
	if err != nil || !ok {
		return "", err
	}

	if item.IsGroup() {
		return r.group(item, icons)
	}

	return r.leaf(item, icons, nested)
}

func (r *Renderer) separator(item Item) template.HTML {
	label := template.HTML(template.HTMLEscapeString(item.Label))
	return r.host.ContentTag("li", label, Attrs{}.withClass(r.opts.SeparatorClass))
}

func (r *Renderer) group(item Item, icons bool) (template.HTML, error) {
	url, hasURL, err := r.URL(item)
	if err != nil {
		return "", err
	}

	active := r.matches(item, url, hasURL)
	if !active {
		if active, err = r.activeDescendant(item); err != nil {
			return "", err
		}
	}

	link, err := r.link(item, icons, url, hasURL)
	if err != nil {
		return "", err
	}

	submenu, err := r.submenu(item, active)
	if err != nil {
		return "", err
	}

	attrs := item.WrapperHTML.withClass(r.when(active, r.opts.ActiveClass), r.opts.SubmenuParentClass)
	return r.host.ContentTag("li", link+submenu, attrs), nil
}

func (r *Renderer) submenu(item Item, active bool) (template.HTML, error) {
	var b strings.Builder
	for _, e := range item.Children.Sorted() {
		frag, err := r.item(e.Item, r.opts.SubmenuIcons, true)
		if err != nil {
			return "", fmt.Errorf("item %q: %w", e.Key, err)
		}
		b.WriteString(string(frag))
	}

	attrs := Attrs{}.withClass(r.when(active, r.opts.ActiveSubmenuClass), r.opts.SubmenuClass)
	return r.host.ContentTag("ul", template.HTML(b.String()), attrs), nil
}

func (r *Renderer) leaf(item Item, icons, nested bool) (template.HTML, error) {
	url, hasURL, err := r.URL(item)
	if err != nil {
		return "", err
	}

	link, err := r.link(item, icons, url, hasURL)
	if err != nil {
		return "", err
	}

	class := r.opts.ItemClass
	if nested {
		class = r.opts.SubmenuItemClass
	}

	attrs := item.WrapperHTML.withClass(r.when(r.matches(item, url, hasURL), r.opts.ActiveClass), class)
	return r.host.ContentTag("li", link, attrs), nil
}

func (r *Renderer) link(item Item, icons bool, url string, hasURL bool) (template.HTML, error) {
	label := r.host.ContentTag("span", template.HTML(template.HTMLEscapeString(item.Label)), nil)

	if icons {
		var err error
		if label, err = r.icon(item, label); err != nil {
			return "", err
		}
	}

	if item.IsGroup() {
		label += template.HTML(r.opts.SubmenuToggle)
	}

	if !hasURL {
		return r.host.ContentTag("span", label, item.HTML.Merge(nil)), nil
	}

	return r.host.LinkTo(label, url, item.HTML.Merge(nil)), nil
}

func (r *Renderer) icon(item Item, label template.HTML) (template.HTML, error) {
	v, err := item.Icon.Resolve(r.host)
	if err != nil {
		return "", fmt.Errorf("icon: %w", err)
	}

	name := text(v)
	if name == "" {
		name = r.opts.IconDefault
	}

	var icon template.HTML
	if r.opts.IconHelper != "" {
		v, err := call(r.host, r.opts.IconHelper, name)
		if err != nil {
			return "", fmt.Errorf("icon: %w", err)
		}
		icon = template.HTML(text(v))
	} else {
		icon = r.host.ContentTag("i", "", Attrs{"class": r.opts.IconPrefix + name})
	}

	if r.opts.IconPosition == IconLeft {
		return icon + label, nil
	}
	return label + icon, nil
}

func (r *Renderer) when(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}
