package domain

import (
	"context"
	"time"
)

// Invitation is a user-authored event page, reachable publicly by slug and
// managed by its owner with the creation token.
// swagger:model Invitation
type Invitation struct {
	ID          string    `json:"id"`
	Token       string    `json:"-"`
	EventName   string    `json:"nome_evento"`
	Phrase      string    `json:"frase,omitempty"`
	EventDate   time.Time `json:"data_evento"`
	StartTime   string    `json:"horario,omitempty"`
	Address     string    `json:"endereco,omitempty"`
	MapsURL     string    `json:"link_maps,omitempty"`
	WhatsappURL string    `json:"link_whatsapp,omitempty"`
	GiftListURL string    `json:"link_presentes,omitempty"`
	Contact     string    `json:"contato,omitempty"`
	Theme       string    `json:"tema,omitempty"`
	Color       string    `json:"cor,omitempty"`
	Views       int       `json:"visualizacoes"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	// CreateWithToken inserts the invitation and consumes the access token in
	// one transaction: the token row is flipped to usado=true and linked to
	// the new invitation. Returns ErrTokenUsed when the token does not exist
	// or was consumed already.
	CreateWithToken(ctx context.Context, inv *Invitation, token string) error
	GetBySlug(ctx context.Context, slug string) (*Invitation, error)
	IncrementViews(ctx context.Context, id string) error
	Update(ctx context.Context, inv *Invitation) error
	Delete(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]*Invitation, error)
	Count(ctx context.Context) (int, error)
	TotalViews(ctx context.Context) (int, error)
}

// GuestStats aggregates RSVP totals for one invitation.
// swagger:model GuestStats
type GuestStats struct {
	Confirmations int `json:"confirmations"`
	Adults        int `json:"adults"`
	Children      int `json:"children"`
}

// ManagementView is what the owner sees on the management page: the
// invitation plus its guest list and totals.
type ManagementView struct {
	Invitation *Invitation `json:"convite"`
	Guests     []*RSVP     `json:"presencas"`
	Stats      GuestStats  `json:"stats"`
}

// InvitationUpdate holds the owner-mutable fields for a PATCH. Nil pointers
// leave the stored value unchanged.
type InvitationUpdate struct {
	EventName   *string
	Phrase      *string
	EventDate   *time.Time
	StartTime   *string
	Address     *string
	MapsURL     *string
	WhatsappURL *string
	GiftListURL *string
	Contact     *string
	Theme       *string
	Color       *string
}

// InvitationService defines invitation-facing operations.
type InvitationService interface {
	// Create redeems the access token and creates the invitation with a
	// generated slug. Returns ErrTokenUsed when the token is unknown or
	// already consumed.
	Create(ctx context.Context, token string, inv *Invitation) (*Invitation, error)
	// GetPublic returns the invitation by slug and increments its view
	// counter.
	GetPublic(ctx context.Context, slug string) (*Invitation, error)
	// GetManagement returns the owner view. The token must match the one the
	// invitation was created with; otherwise ErrForbidden.
	GetManagement(ctx context.Context, slug, token string) (*ManagementView, error)
	Update(ctx context.Context, slug, token string, upd *InvitationUpdate) (*Invitation, error)
}
