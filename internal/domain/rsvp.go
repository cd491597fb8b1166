package domain

import (
	"context"
	"time"
)

// RSVP is a guest's confirmation for one invitation. Entries are created by
// public visitors and never mutated afterwards.
// swagger:model RSVP
type RSVP struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"convite_id"`
	Name         string    `json:"nome"`
	Adults       int       `json:"adultos"`
	Children     int       `json:"criancas"`
	Message      string    `json:"mensagem,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RSVPRepository defines storage operations for RSVP entries.
type RSVPRepository interface {
	Create(ctx context.Context, r *RSVP) error
	GetByID(ctx context.Context, id string) (*RSVP, error)
	ListByInvitationID(ctx context.Context, invitationID string) ([]*RSVP, error)
	Delete(ctx context.Context, id string) error
}

// GuestService defines guest-facing RSVP operations.
type GuestService interface {
	// Confirm records a guest confirmation for the invitation with the given
	// slug. Public, no credential required.
	Confirm(ctx context.Context, slug string, r *RSVP) (*RSVP, error)
	// Remove deletes one guest entry. Requires the owner token of the
	// invitation the entry belongs to.
	Remove(ctx context.Context, slug, token, rsvpID string) error
}
