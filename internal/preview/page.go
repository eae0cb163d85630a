package preview

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// SiteURL prefixes an internal link or asset with the site base. External
// URLs are returned unchanged and relative hrefs are taken from the base.
func SiteURL(base, href string) string {
	if href == "" || config.IsExternalURL(href) || strings.HasPrefix(href, "data:") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// RenderDocument writes a full HTML document for page. The rendered markdown
// body is parsed as a fragment and placed inside <main>.
func RenderDocument(w io.Writer, cfg *config.SiteConfig, page docs.Page, body []byte, entry *manifest.PageEntry) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", cfg.Site.Lang)
	doc.AppendChild(root)
	root.AppendChild(buildHead(cfg, page))

	bodyNode := element(atom.Body)
	root.AppendChild(bodyNode)
	bodyNode.AppendChild(buildNav(cfg))

	main := element(atom.Main, "class", "vp-doc")
	bodyNode.AppendChild(main)
	nodes, err := html.ParseFragment(bytes.NewReader(body), &html.Node{Type: html.ElementNode, DataAtom: atom.Main, Data: "main"})
	if err != nil {
		return fmt.Errorf("parse rendered page: %w", err)
	}
	for _, n := range nodes {
		main.AppendChild(n)
	}

	lu := cfg.Theme.LastUpdated
	if lu.Enabled && entry != nil && entry.LastUpdatedText != "" {
		p := element(atom.P, "class", "last-updated")
		p.AppendChild(textNode(lu.Text + ": " + entry.LastUpdatedText))
		main.AppendChild(p)
	}

	if f := cfg.Theme.Footer; f != (config.Footer{}) {
		footer := element(atom.Footer)
		for _, line := range []string{f.Message, f.Copyright} {
			if line == "" {
				continue
			}
			p := element(atom.P)
			p.AppendChild(textNode(line))
			footer.AppendChild(p)
		}
		bodyNode.AppendChild(footer)
	}

	return html.Render(w, doc)
}

func buildHead(cfg *config.SiteConfig, page docs.Page) *html.Node {
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))

	title := element(atom.Title)
	if page.Title != "" && page.Title != cfg.Site.Title {
		title.AppendChild(textNode(page.Title + " | " + cfg.Site.Title))
	} else {
		title.AppendChild(textNode(cfg.Site.Title))
	}
	head.AppendChild(title)

	description := cfg.Site.Description
	if page.Meta.Description != "" {
		description = page.Meta.Description
	}
	if description != "" {
		head.AppendChild(element(atom.Meta, "name", "description", "content", description))
	}
	for _, icon := range cfg.Site.Icons {
		head.AppendChild(element(atom.Link, "rel", icon.Rel, "href", SiteURL(cfg.Site.Base, icon.Href)))
	}
	return head
}

func buildNav(cfg *config.SiteConfig) *html.Node {
	nav := element(atom.Nav)
	brand := element(atom.A, "class", "site-title", "href", cfg.Site.Base)
	if cfg.Theme.Logo != "" {
		brand.AppendChild(element(atom.Img, "src", SiteURL(cfg.Site.Base, cfg.Theme.Logo), "alt", ""))
	}
	siteTitle := cfg.Theme.SiteTitle
	if siteTitle == "" {
		siteTitle = cfg.Site.Title
	}
	brand.AppendChild(textNode(siteTitle))
	nav.AppendChild(brand)

	for _, item := range cfg.Theme.Nav {
		a := element(atom.A, "href", SiteURL(cfg.Site.Base, item.Link))
		a.AppendChild(textNode(item.Text))
		nav.AppendChild(a)
	}
	return nav
}
