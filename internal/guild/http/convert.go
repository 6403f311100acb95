package http

import (
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
)

func toUser(u domain.PublicUser) guildsdk.User {
	return guildsdk.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func toAuthResponse(res service.AuthResult) guildsdk.AuthResponse {
	return guildsdk.AuthResponse{
		User:        toUser(res.User),
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresIn:   max(int(time.Until(res.ExpiresAt).Seconds()), 0),
		ExpiresAt:   res.ExpiresAt,
	}
}

func toServer(s domain.Server) guildsdk.Server {
	return guildsdk.Server{
		ID:        s.ID,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
	}
}

func toMembers(serverID string, ms []domain.Membership) guildsdk.MembersResponse {
	out := guildsdk.MembersResponse{ServerID: serverID, Members: make([]guildsdk.Member, 0, len(ms))}
	for _, m := range ms {
		out.Members = append(out.Members, guildsdk.Member{
			UserID:   m.UserID,
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

func toInvite(inv domain.Invite) guildsdk.Invite {
	return guildsdk.Invite{
		Code:      inv.Code,
		ServerID:  inv.ServerID,
		CreatedBy: inv.CreatedBy,
		MaxUses:   inv.MaxUses,
		Uses:      inv.Uses,
		ExpiresAt: inv.ExpiresAt,
		Revoked:   inv.Revoked,
		CreatedAt: inv.CreatedAt,
	}
}
