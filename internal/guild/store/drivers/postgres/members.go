package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
)

type membersRepo struct {
	q querier
}

func scanMember(row pgx.Row) (domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	if err := row.Scan(&m.ServerID, &m.UserID, &role, &m.JoinedAt); err != nil {
		return domain.Membership{}, err
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.Membership{}, oops.Code("MEMBER_ROLE_INVALID").With("role", role).Wrap(err)
	}
	m.Role = r
	m.JoinedAt = m.JoinedAt.UTC()
	return m, nil
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.Membership) error {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO server_members (server_id, user_id, role, joined_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (server_id, user_id) DO NOTHING`,
		m.ServerID, m.UserID, m.Role.String(), utc(m.JoinedAt),
	)
	if err != nil {
		return wrap(err, "MEMBER_ADD_FAILED", "server_id", m.ServerID, "user_id", m.UserID)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *membersRepo) GetMember(ctx context.Context, serverID, userID string) (domain.Membership, error) {
	m, err := scanMember(r.q.QueryRow(ctx,
		`SELECT server_id, user_id, role, joined_at
		 FROM server_members WHERE server_id = $1 AND user_id = $2`,
		serverID, userID,
	))
	return m, wrap(err, "MEMBER_GET_FAILED", "server_id", serverID, "user_id", userID)
}

func (r *membersRepo) ListMembers(ctx context.Context, serverID string) ([]domain.Membership, error) {
	rows, err := r.q.Query(ctx,
		`SELECT server_id, user_id, role, joined_at
		 FROM server_members WHERE server_id = $1
		 ORDER BY joined_at, user_id`,
		serverID,
	)
	if err != nil {
		return nil, wrap(err, "MEMBER_LIST_FAILED", "server_id", serverID)
	}
	defer rows.Close()

	out := make([]domain.Membership, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, wrap(err, "MEMBER_LIST_FAILED", "server_id", serverID)
		}
		out = append(out, m)
	}
	return out, wrap(rows.Err(), "MEMBER_LIST_FAILED", "server_id", serverID)
}
