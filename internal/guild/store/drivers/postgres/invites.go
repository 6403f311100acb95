package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, code, server_id, created_by, max_uses, uses, expires_at, revoked, created_at`

func scanInvite(row pgx.Row) (domain.Invite, error) {
	var (
		inv     domain.Invite
		maxUses *int32
	)
	err := row.Scan(
		&inv.ID, &inv.Code, &inv.ServerID, &inv.CreatedBy,
		&maxUses, &inv.Uses, &inv.ExpiresAt, &inv.Revoked, &inv.CreatedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	if maxUses != nil {
		n := int(*maxUses)
		inv.MaxUses = &n
	}
	if inv.ExpiresAt != nil {
		t := inv.ExpiresAt.UTC()
		inv.ExpiresAt = &t
	}
	inv.CreatedAt = inv.CreatedAt.UTC()
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO invites (`+inviteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Code, inv.ServerID, inv.CreatedBy,
		inv.MaxUses, inv.Uses, inv.ExpiresAt, inv.Revoked, utc(inv.CreatedAt),
	)
	return wrap(err, "INVITE_CREATE_FAILED", "server_id", inv.ServerID)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	inv, err := scanInvite(r.q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invites WHERE code = $1`, code))
	return inv, wrap(err, "INVITE_GET_FAILED")
}

func (r *invitesRepo) IncrementUses(ctx context.Context, id string, now time.Time) error {
	var uses int
	err := r.q.QueryRow(ctx,
		`UPDATE invites SET uses = uses + 1
		 WHERE id = $1 AND NOT revoked
		   AND (max_uses IS NULL OR uses < max_uses)
		   AND (expires_at IS NULL OR expires_at > $2)
		 RETURNING uses`,
		id, now.UTC(),
	).Scan(&uses)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return wrap(err, "INVITE_INCREMENT_FAILED", "invite_id", id)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invites WHERE id = $1)`, id).Scan(&exists); err != nil {
		return wrap(err, "INVITE_INCREMENT_FAILED", "invite_id", id)
	}
	if !exists {
		return store.ErrNotFound
	}
	return store.ErrInviteExhausted
}

func (r *invitesRepo) RevokeInvite(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE invites SET revoked = TRUE WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "INVITE_REVOKE_FAILED", "invite_id", id)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) ListInvitesByServer(ctx context.Context, serverID string) ([]domain.Invite, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE server_id = $1 ORDER BY created_at DESC, id DESC`,
		serverID,
	)
	if err != nil {
		return nil, wrap(err, "INVITE_LIST_FAILED", "server_id", serverID)
	}
	defer rows.Close()

	out := make([]domain.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, wrap(err, "INVITE_LIST_FAILED", "server_id", serverID)
		}
		out = append(out, inv)
	}
	return out, wrap(rows.Err(), "INVITE_LIST_FAILED", "server_id", serverID)
}
