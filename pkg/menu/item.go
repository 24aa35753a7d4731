package menu

import (
	"cmp"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Item represents one node of the navigation tree: a link, a group or a separator.
type Item struct {
	// ID is used to build an in-page anchor when URL is absent.
	ID string `yaml:"id,omitempty"`

	// Label is the display text.
	Label string `yaml:"label"`

	// Order positions the item among its siblings, ascending.
	Order float64 `yaml:"order,omitempty"`

	// URL is the link target.
	URL Value `yaml:"url,omitempty"`

	// Icon is the icon name shown next to the label.
	Icon Value `yaml:"icon,omitempty"`

	// Separator renders the item as a divider showing only its label.
	Separator bool `yaml:"separator,omitempty"`

	// Children turn the item into a group with a nested submenu.
	Children Items `yaml:"children,omitempty"`

	// If suppresses the item unless it resolves truthy.
	If Value `yaml:"if,omitempty"`

	// Unless suppresses the item when it resolves truthy. Ignored when If is set.
	Unless Value `yaml:"unless,omitempty"`

	// HTML attributes are merged onto the generated link.
	HTML Attrs `yaml:"html,omitempty"`

	// WrapperHTML attributes are merged onto the list item wrapping the link.
	WrapperHTML Attrs `yaml:"wrapper_html,omitempty"`
}

// IsGroup reports whether the item has children.
func (i Item) IsGroup() bool {
	return len(i.Children) > 0
}

// Entry pairs an item with its key among its siblings.
type Entry struct {
	Key  string
	Item Item
}

// Items is a key to item mapping that keeps its insertion order.
type Items []Entry

// Get returns the item stored under key.
func (it Items) Get(key string) (Item, bool) {
	for _, e := range it {
		if e.Key == key {
			return e.Item, true
		}
	}
	return Item{}, false
}

// Sorted returns a copy ordered by ascending Order. Items sharing an Order keep
// their relative position. The receiver is not modified.
func (it Items) Sorted() Items {
	sorted := slices.Clone(it)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Item.Order, b.Item.Order)
	})
	return sorted
}

// UnmarshalYAML decodes a mapping while keeping the document order of its keys.
func (it *Items) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: menu items must be a mapping", node.Line)
	}

	items := make(Items, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		var item Item
		if err := val.Decode(&item); err != nil {
			return fmt.Errorf("item %q: %w", key.Value, err)
		}

		items = append(items, Entry{Key: key.Value, Item: item})
	}

	*it = items
	return nil
}

// Parse decodes a YAML document describing a menu tree.
func Parse(data []byte) (Items, error) {
	var items Items
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}
	return items, nil
}
