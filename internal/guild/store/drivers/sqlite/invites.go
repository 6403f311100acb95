package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, code, server_id, created_by, max_uses, uses, expires_at, revoked, created_at`

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv       domain.Invite
		maxUses   sql.NullInt64
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.Code, &inv.ServerID, &inv.CreatedBy,
		&maxUses, &inv.Uses, &expiresAt, &inv.Revoked, &inv.CreatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.MaxUses = mapNullIntPtr(maxUses)
	inv.ExpiresAt = mapNullTimePtr(expiresAt)
	inv.CreatedAt = inv.CreatedAt.UTC()
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invites (`+inviteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Code, inv.ServerID, inv.CreatedBy,
		mapOptionalInt(inv.MaxUses), inv.Uses, mapOptionalTime(inv.ExpiresAt), inv.Revoked, utc(inv.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	return scanInvite(r.q.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE code = ?`, code))
}

func (r *invitesRepo) IncrementUses(ctx context.Context, id string, now time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invites SET uses = uses + 1
		 WHERE id = ? AND revoked = 0
		   AND (max_uses IS NULL OR uses < max_uses)
		   AND (expires_at IS NULL OR expires_at > ?)`,
		id, now.UTC(),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM invites WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return store.ErrInviteExhausted
}

func (r *invitesRepo) RevokeInvite(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE invites SET revoked = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) ListInvitesByServer(ctx context.Context, serverID string) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE server_id = ? ORDER BY created_at DESC, id DESC`,
		serverID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
