package main

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/docbot"
	"github.com/fwojciec/docbot/fs"
	"github.com/fwojciec/docbot/sqlite"
)

// isDatabasePath reports whether path names a SQLite corpus.
func isDatabasePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// corpus is an opened corpus location.
type corpus struct {
	store  docbot.PageStore
	loader docbot.PageLoader
	db     *sqlite.DB
}

// openCorpus opens the corpus at path. Readers pass mustExist so a missing
// corpus surfaces as ENOTFOUND.
func openCorpus(path string, mustExist bool) (*corpus, error) {
	if !isDatabasePath(path) {
		file := fs.NewCorpusFile(path)
		return &corpus{store: file, loader: file}, nil
	}

	db := sqlite.NewDB(path)
	db.MustExist = mustExist
	if err := db.Open(); err != nil {
		return nil, err
	}
	store := sqlite.NewPageStore(db)
	return &corpus{store: store, loader: store, db: db}, nil
}

// Close releases the underlying database, if any.
func (c *corpus) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
