package postgres

import (
	"context"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
)

type serversRepo struct {
	q querier
}

func (r *serversRepo) CreateServer(ctx context.Context, s domain.Server) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO servers (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.OwnerID, utc(s.CreatedAt),
	)
	return wrap(err, "SERVER_CREATE_FAILED", "server_id", s.ID)
}

func (r *serversRepo) GetServerByID(ctx context.Context, id string) (domain.Server, error) {
	var s domain.Server
	err := r.q.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at FROM servers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return domain.Server{}, wrap(err, "SERVER_GET_FAILED", "server_id", id)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
