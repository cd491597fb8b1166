package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"convitepro/internal/domain"
)

const dashboardRecentLimit = 10

type adminService struct {
	tokenRepo      domain.AccessTokenRepository
	invitationRepo domain.InvitationRepository
	rsvpRepo       domain.RSVPRepository
}

// NewAdminService creates an AdminService with the given repositories.
func NewAdminService(
	tokenRepo domain.AccessTokenRepository,
	invitationRepo domain.InvitationRepository,
	rsvpRepo domain.RSVPRepository,
) domain.AdminService {
	return &adminService{
		tokenRepo:      tokenRepo,
		invitationRepo: invitationRepo,
		rsvpRepo:       rsvpRepo,
	}
}

func (s *adminService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	tokens, err := s.tokenRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tokens: %w", err)
	}
	invitations, err := s.invitationRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count invitations: %w", err)
	}
	views, err := s.invitationRepo.TotalViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("total views: %w", err)
	}
	recent, err := s.invitationRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent invitations: %w", err)
	}
	return &domain.DashboardStats{
		Tokens:      tokens,
		Invitations: invitations,
		TotalViews:  views,
		Recent:      recent,
	}, nil
}

func (s *adminService) ListTokens(ctx context.Context, params domain.PaginationParams) ([]*domain.AccessToken, int, error) {
	tokens, total, err := s.tokenRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list tokens: %w", err)
	}
	return tokens, total, nil
}

func (s *adminService) MintToken(ctx context.Context, buyerEmail string) (*domain.AccessToken, error) {
	buyerEmail = strings.TrimSpace(buyerEmail)
	if buyerEmail == "" {
		return nil, fmt.Errorf("%w: comprador_email is required", domain.ErrInvalidInput)
	}
	// Manually minted tokens have no marketplace payment behind them; the
	// synthetic payment id keeps the unique constraint satisfied.
	token := domain.NewAccessToken(uuid.NewString(), "manual:"+uuid.NewString(), buyerEmail, "", time.Now().UTC())
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}
	return token, nil
}

func (s *adminService) DeleteInvitation(ctx context.Context, id string) error {
	if err := s.invitationRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

func (s *adminService) DeleteRSVP(ctx context.Context, id string) error {
	if err := s.rsvpRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}
