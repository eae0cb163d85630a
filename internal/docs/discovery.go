// Package docs discovers markdown pages in the content directory and derives
// sidebar trees from them.
package docs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// Page is a discovered markdown page.
type Page struct {
	Path        string // slash separated, relative to the content directory
	Link        string // route without the site base, e.g. "/guide/intro" or "/guide/"
	Section     string // directory of the page, "" at the root
	Name        string // file name without extension
	Title       string
	Meta        frontmatter.Meta
	FrontMatter []byte
	Body        []byte
}

// IsIndex reports whether the page is the landing page of its directory.
func (p Page) IsIndex() bool { return isIndexName(p.Name) }

func isIndexName(name string) bool {
	return strings.EqualFold(name, "index") || strings.EqualFold(name, "_index")
}

// Discover walks dir on fsys and returns every markdown page sorted by path.
// Exclude patterns are doublestar globs relative to dir. Hidden files and
// directories (".vitepress", ".git") and node_modules are skipped.
func Discover(fsys afero.Fs, dir string, exclude []string) ([]Page, error) {
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrContentDirNotFound, dir)
	}

	var pages []Page
	walkErr := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		name := info.Name()
		if info.IsDir() {
			if strings.HasPrefix(name, ".") || name == "node_modules" || excluded(rel, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !isMarkdownFile(name) || excluded(rel, exclude) {
			return nil
		}

		page, err := loadPage(fsys, p, rel)
		if err != nil {
			return err
		}
		slog.Debug("Discovered page", logfields.File(rel), slog.String("link", page.Link))
		pages = append(pages, page)
		return nil
	})
	if walkErr != nil {
		if errors.Is(walkErr, derrors.ErrFileReadFailed) || errors.Is(walkErr, derrors.ErrFrontMatter) {
			return nil, walkErr
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, dir, walkErr)
	}

	slices.SortFunc(pages, func(a, b Page) int { return strings.Compare(a.Path, b.Path) })
	return pages, nil
}

// DiscoverContent discovers pages using the content settings of a configuration.
// The public directory is skipped when it lives inside the content directory.
func DiscoverContent(fsys afero.Fs, content config.ContentConfig) ([]Page, error) {
	exclude := slices.Clone(content.Exclude)
	if content.PublicDir != "" {
		if rel, err := filepath.Rel(content.Dir, content.PublicDir); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
			exclude = append(exclude, filepath.ToSlash(rel)+"/**")
		}
	}
	return Discover(fsys, content.Dir, exclude)
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func loadPage(fsys afero.Fs, fullPath, rel string) (Page, error) {
	content, err := afero.ReadFile(fsys, fullPath)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, rel, err)
	}
	meta, doc, err := frontmatter.Parse(content)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %s: %w", derrors.ErrFrontMatter, rel, err)
	}

	section := path.Dir(rel)
	if section == "." {
		section = ""
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	p := Page{
		Path:        rel,
		Link:        LinkFor(rel),
		Section:     section,
		Name:        name,
		Meta:        meta,
		FrontMatter: doc.FrontMatter,
		Body:        doc.Body,
	}
	p.Title = resolveTitle(p)
	return p, nil
}

// resolveTitle prefers the front matter title, then the first level one
// heading, then a title derived from the file or directory name.
func resolveTitle(p Page) string {
	if t := strings.TrimSpace(p.Meta.Title); t != "" {
		return t
	}
	if t := markdown.Title(p.Body); t != "" {
		return t
	}
	name := p.Name
	if p.IsIndex() {
		if p.Section == "" {
			return "Home"
		}
		name = path.Base(p.Section)
	}
	return TitleFromName(name)
}

var titleCaser = cases.Title(language.English)

// TitleFromName turns a file name such as "getting-started" into "Getting Started".
func TitleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

// LinkFor returns the route of a page path relative to the content directory.
func LinkFor(rel string) string {
	rel = filepath.ToSlash(rel)
	dir := path.Dir(rel)
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if isIndexName(name) {
		if dir == "." {
			return "/"
		}
		return "/" + dir + "/"
	}
	if dir == "." {
		return "/" + name
	}
	return "/" + dir + "/" + name
}

func isMarkdownFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
