package docs

import (
	"cmp"
	"math"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// BuildSidebar derives a sidebar tree from discovered pages. Every directory
// becomes a group whose link is its index page, when present. Entries are
// ordered by the front matter "order" key, then by title. The root index page
// and pages hidden from the sidebar are left out.
func BuildSidebar(pages []Page) []config.SidebarItem {
	root := &dirNode{children: map[string]*dirNode{}}
	for _, p := range pages {
		if !p.Meta.InSidebar() {
			continue
		}
		node := root.dir(p.Section)
		if p.IsIndex() {
			pc := p
			node.index = &pc
			continue
		}
		node.pages = append(node.pages, p)
	}
	return root.items()
}

type dirNode struct {
	name     string
	index    *Page
	pages    []Page
	children map[string]*dirNode
}

func (n *dirNode) dir(section string) *dirNode {
	if section == "" {
		return n
	}
	node := n
	for _, part := range strings.Split(section, "/") {
		child, ok := node.children[part]
		if !ok {
			child = &dirNode{name: part, children: map[string]*dirNode{}}
			node.children[part] = child
		}
		node = child
	}
	return node
}

type sortable struct {
	order int
	title string
	key   string
	item  config.SidebarItem
}

func (n *dirNode) items() []config.SidebarItem {
	var entries []sortable
	for _, p := range n.pages {
		entries = append(entries, sortable{
			order: orderOf(&p),
			title: p.Title,
			key:   p.Path,
			item:  config.SidebarLink(p.Title, p.Link),
		})
	}
	for _, child := range n.children {
		group, ok := child.group()
		if !ok {
			continue
		}
		entries = append(entries, sortable{order: orderOf(child.index), title: group.Text, key: child.name, item: group})
	}
	slices.SortFunc(entries, func(a, b sortable) int {
		return cmp.Or(
			cmp.Compare(a.order, b.order),
			cmp.Compare(strings.ToLower(a.title), strings.ToLower(b.title)),
			cmp.Compare(a.key, b.key),
		)
	})
	out := make([]config.SidebarItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.item)
	}
	return out
}

// group returns false for directories that contribute nothing.
func (n *dirNode) group() (config.SidebarItem, bool) {
	items := n.items()
	if n.index == nil && len(items) == 0 {
		return config.SidebarItem{}, false
	}
	text := TitleFromName(path.Base(n.name))
	g := config.SidebarGroup(text, items...)
	if n.index != nil {
		g.Text = n.index.Title
		g = g.WithLink(n.index.Link)
	}
	return g, true
}

func orderOf(p *Page) int {
	if p == nil || p.Meta.Order == nil {
		return math.MaxInt
	}
	return *p.Meta.Order
}
