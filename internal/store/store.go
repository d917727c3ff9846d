// Package store keeps event books in memory so a cart or order can be
// rebuilt on a later screen or after its session is closed.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

const (
	tableBooks  = "books"
	indexID     = "id"
	indexDomain = "domain"
)

type record struct {
	Root      string
	Domain    string
	Book      *kit.EventBook
	UpdatedAt time.Time
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableBooks: {
			Name: tableBooks,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Root"},
				},
				indexDomain: {
					Name:    indexDomain,
					Indexer: &memdb.StringFieldIndex{Field: "Domain"},
				},
			},
		},
	},
}

// Books is an in-memory event book store. It is safe for concurrent use.
type Books struct {
	db  *memdb.MemDB
	now func() time.Time
}

// New creates an empty store.
func New() (*Books, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("create book store: %w", err)
	}
	return &Books{db: db, now: time.Now}, nil
}

// Save replaces the stored history of the book's aggregate.
func (b *Books) Save(book *kit.EventBook) error {
	if book == nil {
		return fmt.Errorf("save: nil book")
	}
	if book.Cover.Root == uuid.Nil {
		return fmt.Errorf("save: book has no root")
	}
	txn := b.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableBooks, &record{
		Root:      book.Cover.Root.String(),
		Domain:    book.Cover.Domain,
		Book:      book.Clone(),
		UpdatedAt: b.now(),
	}); err != nil {
		return fmt.Errorf("save %s/%s: %w", book.Cover.Domain, book.Cover.Root, err)
	}
	txn.Commit()
	return nil
}

// Load returns a copy of the history stored for root.
func (b *Books) Load(root uuid.UUID) (*kit.EventBook, bool) {
	txn := b.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(tableBooks, indexID, root.String())
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*record).Book.Clone(), true
}

// Delete removes the history stored for root.
func (b *Books) Delete(root uuid.UUID) error {
	txn := b.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableBooks, indexID, root.String()); err != nil {
		return fmt.Errorf("delete %s: %w", root, err)
	}
	txn.Commit()
	return nil
}

// Roots lists the aggregates stored for a domain.
func (b *Books) Roots(domain string) ([]uuid.UUID, error) {
	txn := b.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(tableBooks, indexDomain, domain)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", domain, err)
	}
	var roots []uuid.UUID
	for raw := it.Next(); raw != nil; raw = it.Next() {
		root, err := uuid.Parse(raw.(*record).Root)
		if err != nil {
			continue
		}
		roots = append(roots, root)
	}
	return roots, nil
}
