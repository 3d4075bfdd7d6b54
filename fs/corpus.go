// Package fs stores crawled corpora as JSON or YAML files.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/docbot"
	"gopkg.in/yaml.v3"
)

// Ensure CorpusFile implements the storage interfaces at compile time.
var (
	_ docbot.PageStore  = (*CorpusFile)(nil)
	_ docbot.PageLoader = (*CorpusFile)(nil)
)

// Format is a corpus file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension.
// Anything other than .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// CorpusFile implements docbot.PageStore and docbot.PageLoader over a single
// file holding an ordered list of pages.
// Saved pages are held in memory until Commit, which writes them to
// path.tmp and renames it over path.
type CorpusFile struct {
	path   string
	format Format

	mu    sync.Mutex
	pages []*docbot.Page
}

// NewCorpusFile creates a CorpusFile for path, with the format taken from
// its extension.
func NewCorpusFile(path string) *CorpusFile {
	return &CorpusFile{
		path:   path,
		format: FormatFromPath(path),
	}
}

// Path returns the location of the corpus file.
func (c *CorpusFile) Path() string {
	return c.path
}

func (c *CorpusFile) tempPath() string {
	return c.path + ".tmp"
}

// Save stages a page for the next Commit.
func (c *CorpusFile) Save(ctx context.Context, page *docbot.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p := *page
	c.pages = append(c.pages, &p)
	return nil
}

// Commit replaces the corpus file with the staged pages.
func (c *CorpusFile) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := c.pages
	if pages == nil {
		pages = []*docbot.Page{}
	}
	data, err := c.encode(pages)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(c.tempPath(), data, 0644); err != nil {
		return err
	}
	if err := os.Rename(c.tempPath(), c.path); err != nil {
		return err
	}

	c.pages = nil
	return nil
}

// Abort discards the staged pages and any leftover temporary file.
func (c *CorpusFile) Abort() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages = nil
	if err := os.Remove(c.tempPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoadPages reads the committed corpus. Pages without content read as
// empty text.
func (c *CorpusFile) LoadPages(ctx context.Context) ([]*docbot.Page, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docbot.Errorf(docbot.ENOTFOUND, "corpus source %q not found", c.path)
	} else if err != nil {
		return nil, err
	}

	var pages []*docbot.Page
	switch c.format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &pages)
	default:
		err = json.Unmarshal(data, &pages)
	}
	if err != nil {
		return nil, docbot.Errorf(docbot.EINVALID, "corpus %q is malformed: %v", c.path, err)
	}
	return pages, nil
}

func (c *CorpusFile) encode(pages []*docbot.Page) ([]byte, error) {
	if c.format == FormatYAML {
		return yaml.Marshal(pages)
	}
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
