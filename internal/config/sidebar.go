package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// SidebarKind discriminates the two shapes a sidebar entry can take.
type SidebarKind int

const (
	// SidebarKindLink is a leaf entry with a text and a link.
	SidebarKindLink SidebarKind = iota
	// SidebarKindGroup holds nested entries and may carry its own link.
	SidebarKindGroup
)

func (k SidebarKind) String() string {
	if k == SidebarKindGroup {
		return "group"
	}
	return "link"
}

// SidebarItem is a node of the sidebar tree. The serialized form has no explicit
// kind: an entry with an "items" key is a group, even when its value is null,
// and any other entry is a link.
type SidebarItem struct {
	Kind      SidebarKind
	Text      string
	Link      string
	Collapsed *bool
	Items     []SidebarItem
}

// SidebarLink returns a leaf entry.
func SidebarLink(text, link string) SidebarItem {
	return SidebarItem{Kind: SidebarKindLink, Text: text, Link: link}
}

// SidebarGroup returns a group entry holding items.
func SidebarGroup(text string, items ...SidebarItem) SidebarItem {
	if items == nil {
		items = []SidebarItem{}
	}
	return SidebarItem{Kind: SidebarKindGroup, Text: text, Items: items}
}

// WithLink returns a copy of the item pointing at link.
func (s SidebarItem) WithLink(link string) SidebarItem {
	s.Link = link
	return s
}

// WithCollapsed returns a copy of the group with an explicit collapsed state.
func (s SidebarItem) WithCollapsed(collapsed bool) SidebarItem {
	s.Collapsed = &collapsed
	return s
}

// IsGroup reports whether the item is a group.
func (s SidebarItem) IsGroup() bool { return s.Kind == SidebarKindGroup }

// Walk visits every item of the tree depth first. fn receives the parent chain.
func Walk(items []SidebarItem, fn func(item SidebarItem, parents []SidebarItem)) {
	walk(items, nil, fn)
}

func walk(items []SidebarItem, parents []SidebarItem, fn func(SidebarItem, []SidebarItem)) {
	for _, it := range items {
		fn(it, parents)
		if it.IsGroup() {
			walk(it.Items, append(parents[:len(parents):len(parents)], it), fn)
		}
	}
}

// sidebarWire is the serialized form. A non-nil Items pointer marks a group.
type sidebarWire struct {
	Text      string         `yaml:"text" json:"text"`
	Link      string         `yaml:"link,omitempty" json:"link,omitempty"`
	Collapsed *bool          `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     *[]SidebarItem `yaml:"items,omitempty" json:"items,omitempty"`
}

func (s SidebarItem) wire() sidebarWire {
	w := sidebarWire{Text: s.Text, Link: s.Link}
	if s.IsGroup() {
		items := s.Items
		if items == nil {
			items = []SidebarItem{}
		}
		w.Collapsed = s.Collapsed
		w.Items = &items
	}
	return w
}

func (s *SidebarItem) fromWire(w sidebarWire, hasItems bool) {
	*s = SidebarItem{Text: w.Text, Link: w.Link}
	if w.Items == nil && !hasItems {
		return
	}
	s.Kind = SidebarKindGroup
	s.Collapsed = w.Collapsed
	s.Items = []SidebarItem{}
	if w.Items != nil && *w.Items != nil {
		s.Items = *w.Items
	}
}

// MarshalYAML implements yaml.Marshaler.
func (s SidebarItem) MarshalYAML() (any, error) {
	return s.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SidebarItem) UnmarshalYAML(node *yaml.Node) error {
	var w sidebarWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	s.fromWire(w, yamlHasKey(node, "items"))
	return nil
}

func yamlHasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (s SidebarItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SidebarItem) UnmarshalJSON(data []byte) error {
	var w sidebarWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, hasItems := keys["items"]
	s.fromWire(w, hasItems)
	return nil
}
