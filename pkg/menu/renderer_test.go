package menu_test

import (
	"errors"
	"html/template"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/smartnav/pkg/host"
	"github.com/mchmarny/smartnav/pkg/menu"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// mockHost answers IsCurrentPage from expectations and builds real markup.
// It exposes no named capabilities.
type mockHost struct {
	mock.Mock
}

func (m *mockHost) IsCurrentPage(url string) bool {
	return m.Called(url).Bool(0)
}

func (m *mockHost) LinkTo(label template.HTML, url string, attrs menu.Attrs) template.HTML {
	return host.Link(label, url, attrs)
}

func (m *mockHost) ContentTag(name string, content template.HTML, attrs menu.Attrs) template.HTML {
	return host.Tag(name, content, attrs)
}

func pageAt(t *testing.T, path string, funcs host.Funcs) *host.Context {
	t.Helper()
	h, err := host.New(path, funcs)
	require.NoError(t, err)
	return h
}

func render(t *testing.T, h menu.Host, items menu.Items, opts ...menu.Option) string {
	t.Helper()
	out, err := menu.NewRenderer(h, items, opts...).Render()
	require.NoError(t, err)
	return string(out)
}

func docsTree() menu.Items {
	return menu.Items{
		{Key: "a", Item: menu.Item{Label: "Home", Order: 1, URL: menu.Literal("/")}},
		{Key: "b", Item: menu.Item{Label: "Docs", Order: 0, Children: menu.Items{
			{Key: "x", Item: menu.Item{Label: "API", Order: 0, URL: menu.Literal("/docs/api")}},
		}}},
	}
}

func TestRenderActiveGroup(t *testing.T) {
	out := render(t, pageAt(t, "/docs/api", nil), docsTree())

	expected := `<ul class="menu">` +
		`<li class="active has-submenu">` +
		`<span><i class="icon icon-missing"></i><span>Docs</span></span>` +
		`<ul class="open submenu">` +
		`<li class="active submenu-item"><a href="/docs/api"><span>API</span></a></li>` +
		`</ul></li>` +
		`<li class="menu-item"><a href="/"><i class="icon icon-missing"></i><span>Home</span></a></li>` +
		`</ul>`

	assert.Equal(t, expected, out)
}

func TestRenderInactiveGroup(t *testing.T) {
	out := render(t, pageAt(t, "/", nil), docsTree())

	assert.Contains(t, out, `<li class="has-submenu">`)
	assert.Contains(t, out, `<ul class="submenu">`)
	assert.Contains(t, out, `<li class="submenu-item"><a href="/docs/api">`)
	assert.Contains(t, out, `<li class="active menu-item"><a href="/">`)
}

func TestRenderIsIdempotent(t *testing.T) {
	h := pageAt(t, "/docs/api", nil)
	r := menu.NewRenderer(h, docsTree())

	first, err := r.Render()
	require.NoError(t, err)
	second, err := r.Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderStableOrder(t *testing.T) {
	items := menu.Items{
		{Key: "c", Item: menu.Item{Label: "Gamma", Order: 2}},
		{Key: "a", Item: menu.Item{Label: "Alpha", Order: 1}},
		{Key: "d", Item: menu.Item{Label: "Delta", Order: 2}},
		{Key: "b", Item: menu.Item{Label: "Beta", Order: 1}},
	}

	out := render(t, pageAt(t, "/", nil), items, menu.WithMenuIcons(false))

	var positions []int
	for _, label := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		positions = append(positions, strings.Index(out, label))
	}
	assert.IsIncreasing(t, positions)
}

func TestRenderSuppressedSubtreeIsNotVisited(t *testing.T) {
	visited := false
	items := menu.Items{
		{Key: "admin", Item: menu.Item{
			Label: "Admin",
			If:    menu.Literal(false),
			Children: menu.Items{
				{Key: "users", Item: menu.Item{
					Label: "Users",
					URL: menu.Compute(func(menu.Host) (any, error) {
						visited = true
						return "/admin/users", nil
					}),
				}},
			},
		}},
		{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Literal("/")}},
	}

	out := render(t, pageAt(t, "/admin/users", nil), items)

	assert.False(t, visited)
	assert.NotContains(t, out, "Admin")
	assert.NotContains(t, out, "Users")
	assert.Contains(t, out, "Home")
}

func TestRenderSuppressedChildDoesNotActivateGroup(t *testing.T) {
	items := menu.Items{
		{Key: "docs", Item: menu.Item{Label: "Docs", Children: menu.Items{
			{Key: "draft", Item: menu.Item{Label: "Draft", URL: menu.Literal("/docs/draft"), Unless: menu.Literal(true)}},
			{Key: "api", Item: menu.Item{Label: "API", URL: menu.Literal("/docs/api")}},
		}}},
	}

	out := render(t, pageAt(t, "/docs/draft", nil), items)

	assert.Contains(t, out, `<li class="has-submenu">`)
	assert.NotContains(t, out, "Draft")
}

func TestRenderGuards(t *testing.T) {
	tests := map[string]struct {
		item    menu.Item
		visible bool
	}{
		"no guard":            {item: menu.Item{}, visible: true},
		"if true":             {item: menu.Item{If: menu.Literal(true)}, visible: true},
		"if false":            {item: menu.Item{If: menu.Literal(false)}, visible: false},
		"if nil result":       {item: menu.Item{If: menu.Compute(func(menu.Host) (any, error) { return nil, nil })}, visible: false},
		"if non-bool truthy":  {item: menu.Item{If: menu.Literal("yes")}, visible: true},
		"unless true":         {item: menu.Item{Unless: menu.Literal(true)}, visible: false},
		"unless false":        {item: menu.Item{Unless: menu.Literal(false)}, visible: true},
		"if wins over unless": {item: menu.Item{If: menu.Literal(true), Unless: menu.Literal(true)}, visible: true},
		"if lookup": {
			item:    menu.Item{If: menu.Lookup("signed_in")},
			visible: true,
		},
	}

	funcs := host.Funcs{"signed_in": func(...any) (any, error) { return true, nil }}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tt.item.Label = "Guarded"
			out := render(t, pageAt(t, "/", funcs), menu.Items{{Key: "g", Item: tt.item}})
			assert.Equal(t, tt.visible, strings.Contains(out, "Guarded"))
		})
	}
}

func TestRenderUnlessNotConsultedWhenIfSet(t *testing.T) {
	called := false
	item := menu.Item{
		Label: "Guarded",
		If:    menu.Literal(true),
		Unless: menu.Compute(func(menu.Host) (any, error) {
			called = true
			return true, nil
		}),
	}

	render(t, pageAt(t, "/", nil), menu.Items{{Key: "g", Item: item}})

	assert.False(t, called)
}

func TestRenderSeparator(t *testing.T) {
	items := menu.Items{
		{Key: "sep", Item: menu.Item{
			Label:     "More",
			Separator: true,
			URL:       menu.Lookup("not_called"),
			If:        menu.Literal(false),
			Children:  menu.Items{{Key: "x", Item: menu.Item{Label: "Hidden"}}},
		}},
	}

	out := render(t, pageAt(t, "/", nil), items)

	assert.Equal(t, `<ul class="menu"><li class="separator">More</li></ul>`, out)
}

func TestRenderDeferredURLIsActive(t *testing.T) {
	h := &mockHost{}
	h.On("IsCurrentPage", "/dyn").Return(true)

	items := menu.Items{
		{Key: "dyn", Item: menu.Item{
			Label: "Dynamic",
			URL:   menu.Compute(func(menu.Host) (any, error) { return "/dyn", nil }),
		}},
	}

	out := render(t, h, items, menu.WithMenuIcons(false))

	assert.Equal(t, `<ul class="menu"><li class="active menu-item"><a href="/dyn"><span>Dynamic</span></a></li></ul>`, out)
	h.AssertExpectations(t)
}

func TestRenderDeferredReceivesHost(t *testing.T) {
	h := pageAt(t, "/", host.Funcs{"root": func(...any) (any, error) { return "/", nil }})

	items := menu.Items{
		{Key: "home", Item: menu.Item{
			Label: "Home",
			URL: menu.Compute(func(h menu.Host) (any, error) {
				return h.(menu.Caller).Call("root")
			}),
		}},
	}

	out := render(t, h, items, menu.WithMenuIcons(false))

	assert.Contains(t, out, `<li class="active menu-item"><a href="/">`)
}

func TestRenderWithoutDefaults(t *testing.T) {
	items := menu.Items{{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Literal("/")}}}

	out := render(t, pageAt(t, "/", nil), items,
		menu.WithKeepDefaults(false),
		menu.WithActiveClass("on"),
	)

	assert.Equal(t, `<ul><li class="on"><a href="/"><span>Home</span></a></li></ul>`, out)
}

func TestRenderNoLink(t *testing.T) {
	items := menu.Items{
		{Key: "label", Item: menu.Item{Label: "Plain", HTML: menu.Attrs{"title": "plain"}}},
		{Key: "anchor", Item: menu.Item{ID: "top", Label: "Top", Order: 1}},
	}

	out := render(t, pageAt(t, "/", nil), items, menu.WithMenuIcons(false))

	assert.Contains(t, out, `<li class="menu-item"><span title="plain"><span>Plain</span></span></li>`)
	assert.Contains(t, out, `<li class="menu-item"><a href="#top"><span>Top</span></a></li>`)
}

func TestRenderAttributes(t *testing.T) {
	items := menu.Items{
		{Key: "home", Item: menu.Item{
			Label:       "Home",
			URL:         menu.Literal("/"),
			HTML:        menu.Attrs{"data-turbo": "false", "href": "/ignored"},
			WrapperHTML: menu.Attrs{"class": "primary", "id": "home"},
		}},
	}

	out := render(t, pageAt(t, "/", nil), items,
		menu.WithMenuIcons(false),
		menu.WithMenuHTML(menu.Attrs{"id": "nav", "class": "overridden"}),
	)

	assert.Equal(t,
		`<ul class="menu" id="nav">`+
			`<li class="active menu-item primary" id="home"><a data-turbo="false" href="/"><span>Home</span></a></li>`+
			`</ul>`, out)
}

func TestRenderEscapesLabels(t *testing.T) {
	items := menu.Items{
		{Key: "x", Item: menu.Item{Label: `<b>"Bold"</b>`, URL: menu.Literal("/x")}},
		{Key: "s", Item: menu.Item{Label: "a & b", Separator: true, Order: 1}},
	}

	out := render(t, pageAt(t, "/", nil), items, menu.WithMenuIcons(false))

	assert.Contains(t, out, `<span>&lt;b&gt;&#34;Bold&#34;&lt;/b&gt;</span>`)
	assert.Contains(t, out, `<li class="separator">a &amp; b</li>`)
}

func TestRenderIcons(t *testing.T) {
	items := menu.Items{
		{Key: "docs", Item: menu.Item{Label: "Docs", Icon: menu.Literal("book"), URL: menu.Literal("/docs"), Children: menu.Items{
			{Key: "api", Item: menu.Item{Label: "API", Icon: menu.Literal("code"), URL: menu.Literal("/docs/api")}},
		}}},
	}

	tests := map[string]struct {
		opts     []menu.Option
		contains []string
		absent   []string
	}{
		"defaults": {
			contains: []string{`<a href="/docs"><i class="icon icon-book"></i><span>Docs</span></a>`},
			absent:   []string{"icon-code"},
		},
		"submenu icons on the right": {
			opts: []menu.Option{menu.WithSubmenuIcons(true), menu.WithIconPosition("right")},
			contains: []string{
				`<a href="/docs"><span>Docs</span><i class="icon icon-book"></i></a>`,
				`<a href="/docs/api"><span>API</span><i class="icon icon-code"></i></a>`,
			},
		},
		"unknown position falls through to right": {
			opts:     []menu.Option{menu.WithIconPosition("top")},
			contains: []string{`<span>Docs</span><i class="icon icon-book"></i>`},
		},
		"prefix and toggle": {
			opts: []menu.Option{menu.WithIconPrefix("fa fa-"), menu.WithSubmenuToggle(`<b class="caret"></b>`)},
			contains: []string{
				`<a href="/docs"><i class="fa fa-book"></i><span>Docs</span><b class="caret"></b></a>`,
			},
			absent: []string{`<span>API</span><b class="caret">`},
		},
		"icons off": {
			opts:   []menu.Option{menu.WithMenuIcons(false)},
			absent: []string{"<i "},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out := render(t, pageAt(t, "/", nil), items, tt.opts...)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderIconHelper(t *testing.T) {
	var names []any
	funcs := host.Funcs{
		"svg_icon": func(args ...any) (any, error) {
			names = append(names, args...)
			return template.HTML(`<svg data-icon="` + args[0].(string) + `"></svg>`), nil
		},
	}

	items := menu.Items{
		{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Literal("/"), Icon: menu.Literal("house")}},
		{Key: "blank", Item: menu.Item{Label: "Blank", URL: menu.Literal("/blank"), Order: 1}},
	}

	out := render(t, pageAt(t, "/", funcs), items, menu.WithIconHelper("svg_icon"), menu.WithIconDefault("dot"))

	assert.Equal(t, []any{"house", "dot"}, names)
	assert.Contains(t, out, `<a href="/"><svg data-icon="house"></svg><span>Home</span></a>`)
}

func TestRenderLookupErrors(t *testing.T) {
	items := menu.Items{{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Lookup("root_path")}}}

	t.Run("unknown capability", func(t *testing.T) {
		_, err := menu.NewRenderer(pageAt(t, "/", nil), items).Render()
		require.Error(t, err)
		assert.True(t, errors.Is(err, menu.ErrUnsupported))
		assert.Contains(t, err.Error(), "root_path")
	})

	t.Run("host without dispatch", func(t *testing.T) {
		_, err := menu.NewRenderer(&mockHost{}, items).Render()
		assert.ErrorIs(t, err, menu.ErrUnsupported)
	})

	t.Run("icon helper missing", func(t *testing.T) {
		plain := menu.Items{{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Literal("/")}}}
		_, err := menu.NewRenderer(pageAt(t, "/", nil), plain, menu.WithIconHelper("nope")).Render()
		assert.ErrorIs(t, err, menu.ErrUnsupported)
	})

	t.Run("deferred error", func(t *testing.T) {
		boom := errors.New("boom")
		failing := menu.Items{{Key: "x", Item: menu.Item{
			Label: "X",
			If:    menu.Compute(func(menu.Host) (any, error) { return nil, boom }),
		}}}
		_, err := menu.NewRenderer(pageAt(t, "/", nil), failing).Render()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("resolved", func(t *testing.T) {
		funcs := host.Funcs{"root_path": func(...any) (any, error) { return "/", nil }}
		out := render(t, pageAt(t, "/", funcs), items)
		assert.Contains(t, out, `<li class="active menu-item"><a href="/">`)
	})
}

func TestRendererCallDelegates(t *testing.T) {
	funcs := host.Funcs{"greet": func(args ...any) (any, error) { return "hi " + args[0].(string), nil }}
	r := menu.NewRenderer(pageAt(t, "/", funcs), nil)

	v, err := r.Call("greet", "there")
	require.NoError(t, err)
	assert.Equal(t, "hi there", v)

	_, err = r.Call("missing")
	assert.ErrorIs(t, err, menu.ErrUnsupported)
}

func TestRendererURL(t *testing.T) {
	r := menu.NewRenderer(pageAt(t, "/", nil), nil)

	tests := map[string]struct {
		item menu.Item
		url  string
		ok   bool
	}{
		"literal":         {item: menu.Item{ID: "x", URL: menu.Literal("/x")}, url: "/x", ok: true},
		"anchor from id":  {item: menu.Item{ID: "x"}, url: "#x", ok: true},
		"none":            {item: menu.Item{}, url: "", ok: false},
		"nil computation": {item: menu.Item{ID: "x", URL: menu.Compute(func(menu.Host) (any, error) { return nil, nil })}, ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			url, ok, err := r.URL(tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.url, url)
		})
	}
}

func TestRendererIsActiveGroup(t *testing.T) {
	deep := menu.Item{Label: "L1", Children: menu.Items{
		{Key: "l2", Item: menu.Item{Label: "L2", Children: menu.Items{
			{Key: "l3", Item: menu.Item{Label: "L3", Children: menu.Items{
				{Key: "leaf", Item: menu.Item{Label: "Leaf", URL: menu.Literal("/a/b/c")}},
			}}},
		}}},
	}}

	tests := map[string]struct {
		path   string
		item   menu.Item
		active bool
	}{
		"deep descendant":   {path: "/a/b/c", item: deep, active: true},
		"no descendant":     {path: "/elsewhere", item: deep, active: false},
		"group itself":      {path: "/g", item: menu.Item{URL: menu.Literal("/g"), Children: menu.Items{{Key: "x", Item: menu.Item{URL: menu.Literal("/x")}}}}, active: true},
		"separator ignored": {path: "/s", item: menu.Item{Children: menu.Items{{Key: "s", Item: menu.Item{Separator: true, URL: menu.Literal("/s")}}}}, active: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			active, err := menu.NewRenderer(pageAt(t, tt.path, nil), nil).IsActiveGroup(tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestRenderPathPrefixFallback(t *testing.T) {
	items := menu.Items{
		{Key: "home", Item: menu.Item{Label: "Home", URL: menu.Literal("/")}},
		{Key: "blog", Item: menu.Item{Label: "Blog", URL: menu.Literal("/blog"), Order: 1}},
	}

	t.Run("prefix", func(t *testing.T) {
		out := render(t, pageAt(t, "/blog/2026/hello", nil), items, menu.WithMenuIcons(false))
		assert.Contains(t, out, `<li class="menu-item"><a href="/">`)
		assert.Contains(t, out, `<li class="active menu-item"><a href="/blog">`)
	})

	t.Run("disabled", func(t *testing.T) {
		out := render(t, pageAt(t, "/blog/2026/hello", nil), items, menu.WithMenuIcons(false), menu.WithPathMatch(nil))
		assert.NotContains(t, out, "active")
	})

	t.Run("host without path", func(t *testing.T) {
		h := &mockHost{}
		h.On("IsCurrentPage", mock.Anything).Return(false)
		out := render(t, h, items, menu.WithMenuIcons(false))
		assert.NotContains(t, out, "active")
	})

	t.Run("group url is not prefix matched", func(t *testing.T) {
		group := menu.Items{{Key: "blog", Item: menu.Item{Label: "Blog", URL: menu.Literal("/blog"), Children: menu.Items{
			{Key: "about", Item: menu.Item{Label: "About", URL: menu.Literal("/about")}},
		}}}}
		out := render(t, pageAt(t, "/blog/post", nil), group, menu.WithMenuIcons(false))
		assert.Contains(t, out, `<li class="has-submenu">`)
	})
}

func TestRenderDoesNotMutateItems(t *testing.T) {
	items := menu.Items{
		{Key: "b", Item: menu.Item{Label: "B", Order: 2}},
		{Key: "a", Item: menu.Item{Label: "A", Order: 1, Children: menu.Items{
			{Key: "y", Item: menu.Item{Label: "Y", Order: 2}},
			{Key: "x", Item: menu.Item{Label: "X", Order: 1}},
		}}},
	}

	render(t, pageAt(t, "/", nil), items)

	assert.Equal(t, "b", items[0].Key)
	assert.Equal(t, "y", items[1].Item.Children[0].Key)
}

func TestRenderSnapshot(t *testing.T) {
	items := menu.Items{
		{Key: "home", Item: menu.Item{ID: "home", Label: "Home", Order: 0, URL: menu.Literal("/"), Icon: menu.Literal("home")}},
		{Key: "guides", Item: menu.Item{Label: "Guides", Order: 1, Icon: menu.Literal("book"), Children: menu.Items{
			{Key: "start", Item: menu.Item{Label: "Getting started", Order: 0, URL: menu.Literal("/guides/start")}},
			{Key: "sep", Item: menu.Item{Label: "Advanced", Order: 1, Separator: true}},
			{Key: "deploy", Item: menu.Item{Label: "Deploy", Order: 2, Children: menu.Items{
				{Key: "k8s", Item: menu.Item{Label: "Kubernetes", URL: menu.Literal("/guides/deploy/k8s")}},
			}}},
		}}},
		{Key: "admin", Item: menu.Item{Label: "Admin", Order: 2, URL: menu.Literal("/admin"), If: menu.Literal(false)}},
	}

	out := render(t, pageAt(t, "/guides/deploy/k8s", nil), items,
		menu.WithSubmenuToggle(`<span class="toggle"></span>`),
		menu.WithMenuHTML(menu.Attrs{"role": "navigation"}),
	)

	expected := `<ul class="menu" role="navigation">` +
		`<li class="menu-item"><a href="/"><i class="icon icon-home"></i><span>Home</span></a></li>` +
		`<li class="active has-submenu">` +
		`<span><i class="icon icon-book"></i><span>Guides</span><span class="toggle"></span></span>` +
		`<ul class="open submenu">` +
		`<li class="submenu-item"><a href="/guides/start"><span>Getting started</span></a></li>` +
		`<li class="separator">Advanced</li>` +
		`<li class="active has-submenu">` +
		`<span><span>Deploy</span><span class="toggle"></span></span>` +
		`<ul class="open submenu">` +
		`<li class="active submenu-item"><a href="/guides/deploy/k8s"><span>Kubernetes</span></a></li>` +
		`</ul></li></ul></li></ul>`
	assert.Equal(t, expected, out)

	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, out)
}
