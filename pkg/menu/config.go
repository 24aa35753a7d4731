package menu

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// PathMatchPrefix selects PrefixMatch as the current-path fallback.
	PathMatchPrefix = "prefix"
	// PathMatchNone disables the current-path fallback.
	PathMatchNone = "none"
)

// Config is the declarative form of the render options. Only keys present in
// the document become options, so unset keys keep their default.
type Config struct {
	MenuClass          *string `yaml:"menu_class"`
	MenuHTML           Attrs   `yaml:"menu_html"`
	MenuIcons          *bool   `yaml:"menu_icons"`
	ItemClass          *string `yaml:"item_class"`
	SeparatorClass     *string `yaml:"separator_class"`
	SubmenuParentClass *string `yaml:"submenu_parent_class"`
	SubmenuClass       *string `yaml:"submenu_class"`
	SubmenuItemClass   *string `yaml:"submenu_item_class"`
	ActiveClass        *string `yaml:"active_class"`
	ActiveSubmenuClass *string `yaml:"active_submenu_class"`
	SubmenuIcons       *bool   `yaml:"submenu_icons"`
	SubmenuToggle      *string `yaml:"submenu_toggle"`
	IconHelper         *string `yaml:"icon_helper"`
	IconPrefix         *string `yaml:"icon_prefix"`
	IconDefault        *string `yaml:"icon_default"`
	IconPosition       *string `yaml:"icon_position"`
	PathMatch          *string `yaml:"path_match"`
	KeepDefaults       *bool   `yaml:"keep_defaults"`
}

// ParseConfig decodes a YAML option document.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse menu options: %w", err)
	}
	return &c, nil
}

// Options converts the keys present in c to functional options.
func (c *Config) Options() ([]Option, error) {
	if c == nil {
		return nil, nil
	}

	var opts []Option
	str := func(v *string, f func(string) Option) {
		if v != nil {
			opts = append(opts, f(*v))
		}
	}
	flag := func(v *bool, f func(bool) Option) {
		if v != nil {
			opts = append(opts, f(*v))
		}
	}

	flag(c.KeepDefaults, WithKeepDefaults)
	str(c.MenuClass, WithMenuClass)
	if c.MenuHTML != nil {
		opts = append(opts, WithMenuHTML(c.MenuHTML))
	}
	flag(c.MenuIcons, WithMenuIcons)
	str(c.ItemClass, WithItemClass)
	str(c.SeparatorClass, WithSeparatorClass)
	str(c.SubmenuParentClass, WithSubmenuParentClass)
	str(c.SubmenuClass, WithSubmenuClass)
	str(c.SubmenuItemClass, WithSubmenuItemClass)
	str(c.ActiveClass, WithActiveClass)
	str(c.ActiveSubmenuClass, WithActiveSubmenuClass)
	flag(c.SubmenuIcons, WithSubmenuIcons)
	str(c.SubmenuToggle, WithSubmenuToggle)
	str(c.IconHelper, WithIconHelper)
	str(c.IconPrefix, WithIconPrefix)
	str(c.IconDefault, WithIconDefault)
	str(c.IconPosition, WithIconPosition)

	if c.PathMatch != nil {
		switch *c.PathMatch {
		case PathMatchPrefix:
			opts = append(opts, WithPathMatch(PrefixMatch))
		case PathMatchNone, "":
			opts = append(opts, WithPathMatch(nil))
		default:
			return nil, fmt.Errorf("unknown path_match %q", *c.PathMatch)
		}
	}

	return opts, nil
}
