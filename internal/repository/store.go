package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repositories repository set bound to one database handle or transaction
type Repositories struct {
	Accounts AccountRepository
	Search   SearchRepository
	Hydrate  HydrateRepository
}

// SnapshotRunner runs fn against repositories that all read one consistent snapshot
type SnapshotRunner interface {
	ReadSnapshot(ctx context.Context, fn func(repos Repositories) error) error
}

// Store owns the database handle and hands out snapshot-bound repositories
type Store struct {
	db     *gorm.DB
	opts   SearchOptions
	txOpts *sql.TxOptions
}

// NewStore creates a Store. txOpts may be nil to use the driver defaults.
func NewStore(db *gorm.DB, opts SearchOptions, txOpts *sql.TxOptions) *Store {
	return &Store{db: db, opts: opts, txOpts: txOpts}
}

// ReadSnapshot opens one transaction and runs fn inside it.
// The transaction is rolled back when fn returns an error.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(repos Repositories) error) error {
	run := func(tx *gorm.DB) error {
		return fn(s.bind(tx))
	}
	if s.txOpts != nil {
		return s.db.WithContext(ctx).Transaction(run, s.txOpts)
	}
	return s.db.WithContext(ctx).Transaction(run)
}

func (s *Store) bind(db *gorm.DB) Repositories {
	return Repositories{
		Accounts: NewAccountRepository(db),
		Search:   NewSearchRepository(db, s.opts),
		Hydrate:  NewHydrateRepository(db),
	}
}

// SnapshotTxOptions maps a configured isolation name to transaction options.
// Unknown names fall back to REPEATABLE READ.
func SnapshotTxOptions(isolation string) *sql.TxOptions {
	level := sql.LevelRepeatableRead
	switch isolation {
	case "serializable":
		level = sql.LevelSerializable
	case "read_committed":
		level = sql.LevelReadCommitted
	}
	return &sql.TxOptions{Isolation: level, ReadOnly: true}
}
