package sqlite

import (
	"context"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
)

type membersRepo struct {
	q querier
}

func scanMember(row rowScanner) (domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	if err := row.Scan(&m.ServerID, &m.UserID, &role, &m.JoinedAt); err != nil {
		return domain.Membership{}, mapNotFound(err)
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.Membership{}, err
	}
	m.Role = r
	m.JoinedAt = m.JoinedAt.UTC()
	return m, nil
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.Membership) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO server_members (server_id, user_id, role, joined_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (server_id, user_id) DO NOTHING`,
		m.ServerID, m.UserID, m.Role.String(), utc(m.JoinedAt),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *membersRepo) GetMember(ctx context.Context, serverID, userID string) (domain.Membership, error) {
	return scanMember(r.q.QueryRowContext(ctx,
		`SELECT server_id, user_id, role, joined_at
		 FROM server_members WHERE server_id = ? AND user_id = ?`,
		serverID, userID,
	))
}

func (r *membersRepo) ListMembers(ctx context.Context, serverID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT server_id, user_id, role, joined_at
		 FROM server_members WHERE server_id = ?
		 ORDER BY joined_at, user_id`,
		serverID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Membership, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
