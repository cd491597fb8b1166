package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"convitepro/internal/domain"
)

type guestService struct {
	invitationRepo domain.InvitationRepository
	rsvpRepo       domain.RSVPRepository
}

// NewGuestService creates a GuestService with the given repositories.
func NewGuestService(
	invitationRepo domain.InvitationRepository,
	rsvpRepo domain.RSVPRepository,
) domain.GuestService {
	return &guestService{
		invitationRepo: invitationRepo,
		rsvpRepo:       rsvpRepo,
	}
}

func (s *guestService) Confirm(ctx context.Context, slug string, entry *domain.RSVP) (*domain.RSVP, error) {
	if strings.TrimSpace(entry.Name) == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrInvalidInput)
	}
	if entry.Adults < 0 || entry.Children < 0 {
		return nil, fmt.Errorf("%w: adultos and criancas cannot be negative", domain.ErrInvalidInput)
	}
	if entry.Adults+entry.Children == 0 {
		return nil, fmt.Errorf("%w: at least one guest is required", domain.ErrInvalidInput)
	}

	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	entry.InvitationID = inv.ID
	entry.CreatedAt = time.Now().UTC()
	if err := s.rsvpRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create rsvp: %w", err)
	}
	return entry, nil
}

func (s *guestService) Remove(ctx context.Context, slug, token, rsvpID string) error {
	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}
	if token == "" || inv.Token != token {
		return domain.ErrForbidden
	}

	entry, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get rsvp: %w", err)
	}
	// A token for one invitation must not delete guests of another.
	if entry.InvitationID != inv.ID {
		return domain.ErrNotFound
	}

	if err := s.rsvpRepo.Delete(ctx, rsvpID); err != nil {
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}
