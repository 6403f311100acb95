package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/metrics"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/pkg/cryptox"
	"github.com/aussiebroadwan/guildhall/pkg/idx"
	"github.com/aussiebroadwan/guildhall/pkg/slogx"
)

// UseCountPolicy decides which redemptions consume an invite use.
type UseCountPolicy int

const (
	// CountRedemptionAttempts consumes a use on every successful redemption,
	// including a member redeeming again.
	CountRedemptionAttempts UseCountPolicy = iota
	// CountNewMembers consumes a use only when a membership is created.
	CountNewMembers
)

func (p UseCountPolicy) String() string {
	switch p {
	case CountNewMembers:
		return "new_members"
	default:
		return "redemption_attempts"
	}
}

// ParseUseCountPolicy accepts "redemption_attempts" or "new_members".
func ParseUseCountPolicy(s string) (UseCountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "redemption_attempts":
		return CountRedemptionAttempts, nil
	case "new_members":
		return CountNewMembers, nil
	default:
		return 0, fmt.Errorf("unknown invite use policy %q", s)
	}
}

const (
	// maxCodeLookups bounds the redraws made before inserting a code.
	maxCodeLookups = 5
	// maxInsertRetries bounds fresh-code retries after an insert collision.
	maxInsertRetries = 3
)

type InviteService struct {
	Store  store.Store
	Policy UseCountPolicy

	// Now and GenerateCode default to time.Now and cryptox.GenerateInviteCode.
	Now          func() time.Time
	GenerateCode func() (string, error)
}

// CreateInviteParams carries the optional limits of a new invite.
type CreateInviteParams struct {
	ServerID  string
	CreatorID string
	MaxUses   *int
	ExpiresAt *time.Time
}

// CreateInvite mints an invite for a server the creator belongs to.
func (s *InviteService) CreateInvite(ctx context.Context, p CreateInviteParams) (domain.Invite, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("server_id", p.ServerID),
		slog.String("creator_id", p.CreatorID),
	)
	now := s.now()

	// 1. Validate the limits
	if p.MaxUses != nil && *p.MaxUses < 1 {
		log.Debug("invite rejected: max_uses below 1", slog.Int("max_uses", *p.MaxUses))
		return domain.Invite{}, ErrInvalidInviteRequest
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		log.Debug("invite rejected: expiry not in the future", slog.Time("expires_at", *p.ExpiresAt))
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Only members may invite
	if err := requireMember(ctx, s.Store, p.ServerID, p.CreatorID); err != nil {
		if !errors.Is(err, ErrServerNotFound) && !errors.Is(err, ErrNotMember) {
			slogx.Error(log, "failed to check membership", err)
		}
		return domain.Invite{}, err
	}

	inv := domain.Invite{
		ID:        idx.New().String(),
		ServerID:  p.ServerID,
		CreatedBy: p.CreatorID,
		MaxUses:   p.MaxUses,
		ExpiresAt: utcPtr(p.ExpiresAt),
		CreatedAt: now.UTC(),
	}

	// 3. Draw a free code and insert, redrawing if another insert wins the code
	redraw := retry.WithMaxRetries(maxInsertRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))
	err := retry.Do(ctx, redraw, func(ctx context.Context) error {
		code, err := s.drawCode(ctx)
		if err != nil {
			return err
		}
		inv.Code = code

		err = s.Store.Invites().CreateInvite(ctx, inv)
		if errors.Is(err, store.ErrAlreadyExists) {
			metrics.RecordCodeCollision()
			log.Warn("invite code collided at insert, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			err = oops.Code("INVITE_CODE_EXHAUSTED").With("server_id", p.ServerID).Wrap(err)
		}
		slogx.Error(log, "failed to create invite", err)
		return domain.Invite{}, err
	}

	log.Info("invite created", slog.String("invite_id", inv.ID))
	metrics.RecordInviteCreated()
	return inv, nil
}

// drawCode returns a code no stored invite uses, or the last draw once
// maxCodeLookups is spent. The insert remains the final arbiter.
func (s *InviteService) drawCode(ctx context.Context) (string, error) {
	gen := s.GenerateCode
	if gen == nil {
		gen = cryptox.GenerateInviteCode
	}

	var code string
	for range maxCodeLookups {
		var err error
		if code, err = gen(); err != nil {
			return "", err
		}
		_, err = s.Store.Invites().GetInviteByCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		metrics.RecordCodeCollision()
	}
	return code, nil
}

// GetInviteByCode returns the invite whatever its state. Anything that is not
// a well-formed code is ErrInviteNotFound without a lookup.
func (s *InviteService) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	if !cryptox.IsInviteCode(code) {
		return domain.Invite{}, ErrInviteNotFound
	}
	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		slogx.Error(slogx.FromContext(ctx), "failed to fetch invite", err)
		return domain.Invite{}, err
	}
	return inv, nil
}

// AcceptInvite redeems code for userID and returns the server's members.
// It performs the following steps in one transaction:
// 1. Looks up the invite
// 2. Rejects revoked, expired and exhausted invites before any write
// 3. Adds the membership; an existing membership is kept as is
// 4. Consumes a use per the policy; an invite revoked, expired or used up
//    since the lookup rolls everything back
// 5. Lists the server's members
func (s *InviteService) AcceptInvite(ctx context.Context, userID, code string) ([]domain.Membership, error) {
	log := slogx.FromContext(ctx).With(slog.String("user_id", userID))
	if !cryptox.IsInviteCode(code) {
		metrics.RecordRedemption(metrics.OutcomeRejected)
		return nil, ErrInviteNotFound
	}
	now := s.now()

	var (
		members []domain.Membership
		joined  bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Lookup
		inv, err := tx.Invites().GetInviteByCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotFound
			}
			return err
		}
		log = log.With(slog.String("invite_id", inv.ID), slog.String("server_id", inv.ServerID))

		// 2. Validity gate
		if !inv.Usable(now) {
			log.Debug("redemption of unusable invite",
				slog.Bool("revoked", inv.Revoked),
				slog.Bool("expired", inv.Expired(now)),
				slog.Bool("exhausted", inv.Exhausted()),
			)
			return ErrInviteInvalid
		}

		// 3. Membership
		err = tx.Members().AddMember(ctx, domain.Membership{
			ServerID: inv.ServerID,
			UserID:   userID,
			Role:     domain.RoleMember,
			JoinedAt: now.UTC(),
		})
		switch {
		case err == nil:
			joined = true
		case errors.Is(err, store.ErrAlreadyExists):
			joined = false
		default:
			return err
		}

		// 4. Use count
		if joined || s.Policy == CountRedemptionAttempts {
			if err := tx.Invites().IncrementUses(ctx, inv.ID, now); err != nil {
				switch {
				case errors.Is(err, store.ErrInviteExhausted):
					log.Debug("invite became unusable during redemption")
					return ErrInviteInvalid
				case errors.Is(err, store.ErrNotFound):
					return ErrInviteNotFound
				default:
					return err
				}
			}
		}

		// 5. Member list
		members, err = tx.Members().ListMembers(ctx, inv.ServerID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteNotFound), errors.Is(err, ErrInviteInvalid):
			metrics.RecordRedemption(metrics.OutcomeRejected)
		default:
			slogx.Error(log, "failed to accept invite", err)
			metrics.RecordRedemption(metrics.OutcomeError)
		}
		return nil, err
	}

	if joined {
		log.Info("invite accepted")
		metrics.RecordRedemption(metrics.OutcomeSuccess)
	} else {
		log.Debug("invite accepted by existing member")
		metrics.RecordRedemption(metrics.OutcomeDuplicate)
	}
	return members, nil
}

// RevokeInvite marks an invite unusable. The invite creator and the server
// owner may revoke; revoking a revoked invite succeeds.
func (s *InviteService) RevokeInvite(ctx context.Context, code, actorID string) error {
	log := slogx.FromContext(ctx).With(slog.String("actor_id", actorID))

	inv, err := s.GetInviteByCode(ctx, code)
	if err != nil {
		return err
	}

	if inv.CreatedBy != actorID {
		server, err := s.Store.Servers().GetServerByID(ctx, inv.ServerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrServerNotFound
			}
			slogx.Error(log, "failed to fetch server", err, slog.String("server_id", inv.ServerID))
			return err
		}
		if server.OwnerID != actorID {
			log.Warn("invite revocation denied", slog.String("invite_id", inv.ID))
			return ErrNotPermitted
		}
	}

	if inv.Revoked {
		return nil
	}
	if err := s.Store.Invites().RevokeInvite(ctx, inv.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		slogx.Error(log, "failed to revoke invite", err, slog.String("invite_id", inv.ID))
		return err
	}

	log.Info("invite revoked", slog.String("invite_id", inv.ID))
	return nil
}

// ListServerInvites returns every invite of a server, usable or not, to a member.
func (s *InviteService) ListServerInvites(ctx context.Context, serverID, actorID string) ([]domain.Invite, error) {
	if err := requireMember(ctx, s.Store, serverID, actorID); err != nil {
		return nil, err
	}
	invites, err := s.Store.Invites().ListInvitesByServer(ctx, serverID)
	if err != nil {
		slogx.Error(slogx.FromContext(ctx), "failed to list invites", err, slog.String("server_id", serverID))
		return nil, err
	}
	return invites, nil
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
