package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInviteExhausted is returned by IncrementUses when the invite has no
	// uses left at the moment of the update.
	ErrInviteExhausted = errors.New("store: invite exhausted")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a transaction
// can hand out the same repositories bound to itself.
type Store interface {
	Users() Users
	Servers() Servers
	Members() Members
	Invites() Invites

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx exposes the repositories bound to one open transaction. Commit and
// rollback belong to Store.WithTx.
type Tx interface {
	Users() Users
	Servers() Servers
	Members() Members
	Invites() Invites
}

type Users interface {
	// CreateUser inserts a user. A duplicate email is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the email exactly.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	EmailExists(ctx context.Context, email string) (bool, error)
}

type Servers interface {
	CreateServer(ctx context.Context, s domain.Server) error
	GetServerByID(ctx context.Context, id string) (domain.Server, error)
}

type Members interface {
	// AddMember inserts the membership unless the (server, user) pair already
	// exists, in which case it returns ErrAlreadyExists and changes nothing.
	AddMember(ctx context.Context, m domain.Membership) error

	GetMember(ctx context.Context, serverID, userID string) (domain.Membership, error)

	// ListMembers returns memberships ordered by join time.
	ListMembers(ctx context.Context, serverID string) ([]domain.Membership, error)
}

type Invites interface {
	// CreateInvite inserts an invite. A duplicate code is ErrAlreadyExists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns the invite whatever its state.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// IncrementUses adds one use in a single conditional update that only
	// matches an invite still redeemable at now. It returns ErrInviteExhausted
	// when the invite is revoked, expired or out of uses and ErrNotFound when
	// the invite does not exist.
	IncrementUses(ctx context.Context, id string, now time.Time) error

	// RevokeInvite marks the invite revoked. Revoking twice is not an error.
	RevokeInvite(ctx context.Context, id string) error

	// ListInvitesByServer returns every invite of a server, newest first.
	ListInvitesByServer(ctx context.Context, serverID string) ([]domain.Invite, error)
}
