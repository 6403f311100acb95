package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	_ "modernc.org/sqlite"
)

// Option tunes NewStore.
type Option func(*options)

type options struct {
	maxOpenConns int
}

// WithMaxOpenConns bounds the connection pool. In-memory databases always
// use a single connection so every caller sees the same database.
func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

type Store struct {
	db  *sql.DB
	dsn string
}

var _ store.Store = (*Store)(nil)

// NewStore opens the database at dsn, a file path or ":memory:".
func NewStore(dsn string, opts ...Option) (*Store, error) {
	o := options{maxOpenConns: 1}
	for _, opt := range opts {
		opt(&o)
	}

	memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if memory {
		o.maxOpenConns = 1
	}

	db, err := sql.Open("sqlite", withPragmas(dsn, memory))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(o.maxOpenConns)
	db.SetMaxIdleConns(o.maxOpenConns)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	return &Store{db: db, dsn: dsn}, nil
}

// withPragmas applies per-connection pragmas through the DSN so every pooled
// connection gets them.
func withPragmas(dsn string, memory bool) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)", "_time_format=sqlite"}
	if !memory {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}

	if dsn == ":memory:" {
		dsn = "file::memory:"
	} else if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Safe to call after commit.
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(repos{q: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

func (s *Store) Users() store.Users     { return &usersRepo{q: s.db} }
func (s *Store) Servers() store.Servers { return &serversRepo{q: s.db} }
func (s *Store) Members() store.Members { return &membersRepo{q: s.db} }
func (s *Store) Invites() store.Invites { return &invitesRepo{q: s.db} }

// repos binds the repositories to an open transaction.
type repos struct {
	q querier
}

func (r repos) Users() store.Users     { return &usersRepo{q: r.q} }
func (r repos) Servers() store.Servers { return &serversRepo{q: r.q} }
func (r repos) Members() store.Members { return &membersRepo{q: r.q} }
func (r repos) Invites() store.Invites { return &invitesRepo{q: r.q} }
