package docs

import (
	"strings"
)

// Index resolves site links to discovered pages.
type Index struct {
	byPath map[string]Page
}

// NewIndex indexes pages by their content-relative path.
func NewIndex(pages []Page) *Index {
	ix := &Index{byPath: make(map[string]Page, len(pages))}
	for _, p := range pages {
		ix.byPath[p.Path] = p
	}
	return ix
}

// Len returns the number of indexed pages.
func (ix *Index) Len() int { return len(ix.byPath) }

// Resolve maps a root-relative link to a page. "/a/b" matches a/b.md or
// a/b/index.md and "/a/" matches a/index.md. Query strings, fragments and
// ".html" or ".md" suffixes are ignored. External links never resolve.
func (ix *Index) Resolve(link string) (Page, bool) {
	if !strings.HasPrefix(link, "/") || strings.HasPrefix(link, "//") {
		return Page{}, false
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	rel := strings.TrimPrefix(link, "/")
	for _, candidate := range Candidates(rel) {
		if p, ok := ix.byPath[candidate]; ok {
			return p, true
		}
	}
	return Page{}, false
}

// Candidates lists the page paths a link path may refer to, most specific first.
func Candidates(rel string) []string {
	if rel == "" || strings.HasSuffix(rel, "/") {
		return []string{rel + "index.md", rel + "_index.md"}
	}
	for _, ext := range []string{".html", ".md"} {
		rel = strings.TrimSuffix(rel, ext)
	}
	return []string{rel + ".md", rel + "/index.md", rel + "/_index.md"}
}
