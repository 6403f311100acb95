package sqlite

import (
	"context"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
)

type serversRepo struct {
	q querier
}

func (r *serversRepo) CreateServer(ctx context.Context, s domain.Server) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO servers (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.Name, s.OwnerID, utc(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *serversRepo) GetServerByID(ctx context.Context, id string) (domain.Server, error) {
	var s domain.Server
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM servers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return domain.Server{}, mapNotFound(err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
