// Package site serves pages that share a navigation menu rendered per request.
package site

import (
	"fmt"
	"html/template"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/smartnav/pkg/host"
	"github.com/mchmarny/smartnav/pkg/menu"
)

// Site is a set of pages sharing one navigation menu.
type Site struct {
	// Title is shown on every page.
	Title string `yaml:"title"`

	// Description is an optional subtitle.
	Description string `yaml:"description,omitempty"`

	// Options configures how the menu is rendered.
	Options *menu.Config `yaml:"options,omitempty"`

	// Menu is the navigation tree.
	Menu menu.Items `yaml:"menu"`

	// Funcs are the capabilities menu items may look up by name.
	// Not loaded from YAML.
	Funcs host.Funcs `yaml:"-"`
}

// Load reads a site document from path.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a site document.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse site: %w", err)
	}

	if _, err := s.Options.Options(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Navigation renders the menu for the page h describes.
func (s *Site) Navigation(h menu.Host) (template.HTML, error) {
	opts, err := s.Options.Options()
	if err != nil {
		return "", err
	}

	return menu.Navigation(h, s.Menu, opts...)
}
