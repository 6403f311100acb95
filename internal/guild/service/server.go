package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/pkg/idx"
	"github.com/aussiebroadwan/guildhall/pkg/slogx"
)

type ServerService struct {
	Store store.Store
}

// CreateServer creates a server owned by ownerID together with the owner's
// membership.
func (s *ServerService) CreateServer(ctx context.Context, ownerID, name string) (domain.Server, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	server := domain.Server{
		ID:        idx.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Servers().CreateServer(ctx, server); err != nil {
			return err
		}
		return tx.Members().AddMember(ctx, domain.Membership{
			ServerID: server.ID,
			UserID:   ownerID,
			Role:     domain.RoleOwner,
			JoinedAt: now,
		})
	})
	if err != nil {
		slogx.Error(log, "failed to create server", err, slog.String("owner_id", ownerID))
		return domain.Server{}, err
	}

	log.Info("server created", slog.String("server_id", server.ID), slog.String("owner_id", ownerID))
	return server, nil
}

// ListMembers returns the server's memberships to one of its members.
func (s *ServerService) ListMembers(ctx context.Context, serverID, actorID string) ([]domain.Membership, error) {
	if err := requireMember(ctx, s.Store, serverID, actorID); err != nil {
		return nil, err
	}
	members, err := s.Store.Members().ListMembers(ctx, serverID)
	if err != nil {
		slogx.Error(slogx.FromContext(ctx), "failed to list members", err, slog.String("server_id", serverID))
		return nil, err
	}
	return members, nil
}

// requireMember returns ErrServerNotFound or ErrNotMember unless userID
// belongs to serverID.
func requireMember(ctx context.Context, st store.Store, serverID, userID string) error {
	if _, err := st.Servers().GetServerByID(ctx, serverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrServerNotFound
		}
		return err
	}
	if _, err := st.Members().GetMember(ctx, serverID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
