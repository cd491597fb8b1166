package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"

	"convitepro/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	rsvpRepo       domain.RSVPRepository
}

// NewInvitationService creates an InvitationService with the given repositories.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	rsvpRepo domain.RSVPRepository,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		rsvpRepo:       rsvpRepo,
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateSlug builds the public identifier from the event name: lowercased,
// non-alphanumeric runs collapsed to "-", plus a 5-character random suffix so
// two events with the same name get distinct slugs.
func generateSlug(eventName string) string {
	base := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(eventName), "-"), "-")
	if base == "" {
		base = "convite"
	}
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	for i := range suffix {
		suffix[i] = slugSuffixAlphabet[int(suffix[i])%len(slugSuffixAlphabet)]
	}
	return base + "-" + string(suffix)
}

func (s *invitationService) Create(ctx context.Context, token string, inv *domain.Invitation) (*domain.Invitation, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(inv.EventName) == "" {
		return nil, fmt.Errorf("%w: nome_evento is required", domain.ErrInvalidInput)
	}
	if inv.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: data_evento is required", domain.ErrInvalidInput)
	}

	inv.Slug = generateSlug(inv.EventName)
	inv.CreatedAt = time.Now().UTC()
	inv.Views = 0

	if err := s.invitationRepo.CreateWithToken(ctx, inv, token); err != nil {
		if err == domain.ErrTokenUsed {
			return nil, domain.ErrTokenUsed
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) GetPublic(ctx context.Context, slug string) (*domain.Invitation, error) {
	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	// The view counter is best effort; a failed increment must not hide the
	// invitation from a guest.
	if err := s.invitationRepo.IncrementViews(ctx, inv.ID); err == nil {
		inv.Views++
	}
	return inv, nil
}

func (s *invitationService) GetManagement(ctx context.Context, slug, token string) (*domain.ManagementView, error) {
	inv, err := s.ownedInvitation(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	guests, err := s.rsvpRepo.ListByInvitationID(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	view := &domain.ManagementView{Invitation: inv, Guests: guests}
	for _, g := range guests {
		view.Stats.Confirmations++
		view.Stats.Adults += g.Adults
		view.Stats.Children += g.Children
	}
	return view, nil
}

func (s *invitationService) Update(ctx context.Context, slug, token string, upd *domain.InvitationUpdate) (*domain.Invitation, error) {
	inv, err := s.ownedInvitation(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&inv.EventName, upd.EventName)
	applyString(&inv.Phrase, upd.Phrase)
	applyString(&inv.StartTime, upd.StartTime)
	applyString(&inv.Address, upd.Address)
	applyString(&inv.MapsURL, upd.MapsURL)
	applyString(&inv.WhatsappURL, upd.WhatsappURL)
	applyString(&inv.GiftListURL, upd.GiftListURL)
	applyString(&inv.Contact, upd.Contact)
	applyString(&inv.Theme, upd.Theme)
	applyString(&inv.Color, upd.Color)
	if upd.EventDate != nil {
		inv.EventDate = *upd.EventDate
	}

	if strings.TrimSpace(inv.EventName) == "" {
		return nil, fmt.Errorf("%w: nome_evento cannot be empty", domain.ErrInvalidInput)
	}

	if err := s.invitationRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}
	return inv, nil
}

// ownedInvitation loads the invitation and checks the owner token.
func (s *invitationService) ownedInvitation(ctx context.Context, slug, token string) (*domain.Invitation, error) {
	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if token == "" || inv.Token != token {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}
