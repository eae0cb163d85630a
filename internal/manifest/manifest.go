// Package manifest describes the pages of a build: titles, outlines,
// last-updated data and content fingerprints.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inful/mdfp"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/emit"
	"git.home.luguber.info/inful/docsite/internal/gitinfo"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// FileName is the name of the manifest written next to the engine configuration.
const FileName = "manifest.json"

// LastUpdatedFunc returns the last modification time of a page given its
// path relative to the content directory.
type LastUpdatedFunc func(path string) (time.Time, error)

// Manifest is the page inventory of one build.
type Manifest struct {
	Generated  time.Time   `json:"generated"`
	ConfigHash string      `json:"configHash"`
	Pages      []PageEntry `json:"pages"`
}

// PageEntry describes one page.
type PageEntry struct {
	Path            string             `json:"path"`
	Link            string             `json:"link"`
	Title           string             `json:"title"`
	Outline         []markdown.Heading `json:"outline,omitempty"`
	LastUpdated     *time.Time         `json:"lastUpdated,omitempty"`
	LastUpdatedText string             `json:"lastUpdatedText,omitempty"`
	Fingerprint     string             `json:"fingerprint"`
}

// Build assembles the manifest for pages. lookup is only consulted when the
// theme shows last-updated data and may be nil.
func Build(cfg *config.SiteConfig, pages []docs.Page, lookup LastUpdatedFunc) *Manifest {
	m := &Manifest{
		Generated:  time.Now().UTC(),
		ConfigHash: cfg.Snapshot(),
		Pages:      make([]PageEntry, 0, len(pages)),
	}
	lu := cfg.Theme.LastUpdated
	for _, p := range pages {
		entry := PageEntry{
			Path:        p.Path,
			Link:        p.Link,
			Title:       p.Title,
			Outline:     markdown.Outline(p.Body, cfg.Theme.Outline.Min, cfg.Theme.Outline.Max),
			Fingerprint: Fingerprint(p),
		}
		if lu.Enabled && lookup != nil {
			ts, err := lookup(p.Path)
			switch {
			case err == nil:
				ts = ts.UTC()
				entry.LastUpdated = &ts
				entry.LastUpdatedText = FormatTime(ts, cfg.Site.Lang, lu.DateStyle, lu.TimeStyle)
			case stderrors.Is(err, gitinfo.ErrNotTracked):
				slog.Debug("Page has no history", logfields.File(p.Path))
			default:
				slog.Warn("Last updated lookup failed", logfields.File(p.Path), logfields.Error(err))
			}
		}
		m.Pages = append(m.Pages, entry)
	}
	return m
}

// Fingerprint returns the mdfp fingerprint of a page's front matter and body.
func Fingerprint(p docs.Page) string {
	fm := strings.TrimSuffix(strings.ReplaceAll(string(p.FrontMatter), "\r\n", "\n"), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, string(p.Body))
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest content. The generation
// time is excluded so that identical inputs hash the same.
func (m *Manifest) Hash() (string, error) {
	data, err := json.Marshal(struct {
		ConfigHash string      `json:"configHash"`
		Pages      []PageEntry `json:"pages"`
	}{m.ConfigHash, m.Pages})
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// Write stores the manifest as JSON at path.
func (m *Manifest) Write(fsys afero.Fs, path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return emit.WriteFile(fsys, path, data)
}
