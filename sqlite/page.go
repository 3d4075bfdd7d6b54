package sqlite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docbot"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ docbot.PageStore  = (*PageStore)(nil)
	_ docbot.PageLoader = (*PageStore)(nil)
)

// PageStore implements docbot.PageStore and docbot.PageLoader using SQLite.
// Saved pages are staged in memory; Commit replaces the stored corpus in a
// single transaction.
type PageStore struct {
	db *DB

	mu      sync.Mutex
	pending []*docbot.Page
}

// NewPageStore creates a new PageStore.
func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Save stages a page for the next Commit.
func (s *PageStore) Save(ctx context.Context, page *docbot.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := *page
	s.pending = append(s.pending, &p)
	return nil
}

// Commit replaces all stored pages with the staged ones.
func (s *PageStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (id, position, url, title, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for i, p := range s.pending {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), i, p.URL, p.Title, p.Content,
			hashContent(p.Content), fetchedAt); err != nil {
			return fmt.Errorf("insert page %s: %w", p.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// Abort discards the staged pages.
func (s *PageStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}

// LoadPages returns the stored pages in crawl order.
func (s *PageStore) LoadPages(ctx context.Context) ([]*docbot.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, content
		FROM pages
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make([]*docbot.Page, 0)
	for rows.Next() {
		var p docbot.Page
		if err := rows.Scan(&p.URL, &p.Title, &p.Content); err != nil {
			return nil, err
		}
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}
