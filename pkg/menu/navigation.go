package menu

import (
	"html/template"
)

// Navigation renders items for h in a single call.
func Navigation(h Host, items Items, opts ...Option) (template.HTML, error) {
	return NewRenderer(h, items, opts...).Render()
}

// FuncMap exposes `navigation` to html/template. Each call renders the given
// items for h with opts.
//
// Example:
//
//	tmpl := template.New("page").Funcs(menu.FuncMap(host))
//	// {{ navigation .Menu }}
func FuncMap(h Host, opts ...Option) template.FuncMap {
	return template.FuncMap{
		"navigation": func(items Items) (template.HTML, error) {
			return Navigation(h, items, opts...)
		},
	}
}
