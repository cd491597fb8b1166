package services

import (
	"context"
	"fmt"

	"convitepro/internal/domain"
)

// fakeTokenRepo implements domain.AccessTokenRepository for tests.
type fakeTokenRepo struct {
	byPayment map[string]*domain.AccessToken
	byToken   map[string]*domain.AccessToken
	createErr error
	nextID    int
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		byPayment: make(map[string]*domain.AccessToken),
		byToken:   make(map[string]*domain.AccessToken),
	}
}

func (f *fakeTokenRepo) Create(ctx context.Context, t *domain.AccessToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byPayment[t.PaymentID]; exists {
		return domain.ErrDuplicatePayment
	}
	f.nextID++
	t.ID = fmt.Sprintf("token-id-%d", f.nextID)
	f.byPayment[t.PaymentID] = t
	f.byToken[t.Token] = t
	return nil
}

func (f *fakeTokenRepo) GetByToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	if t, ok := f.byToken[token]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTokenRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.AccessToken, int, error) {
	tokens := []*domain.AccessToken{}
	for _, t := range f.byPayment {
		tokens = append(tokens, t)
	}
	return tokens, len(tokens), nil
}

func (f *fakeTokenRepo) Count(ctx context.Context) (int, error) {
	return len(f.byPayment), nil
}

// fakeInvitationRepo implements domain.InvitationRepository for tests.
// unusedTokens models the usado flag: CreateWithToken consumes from it.
type fakeInvitationRepo struct {
	bySlug       map[string]*domain.Invitation
	unusedTokens map[string]bool
	createErr    error
	updateErr    error
	incremented  []string
	deleted      []string
	nextID       int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		bySlug:       make(map[string]*domain.Invitation),
		unusedTokens: make(map[string]bool),
	}
}

func (f *fakeInvitationRepo) CreateWithToken(ctx context.Context, inv *domain.Invitation, token string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if !f.unusedTokens[token] {
		return domain.ErrTokenUsed
	}
	delete(f.unusedTokens, token)
	f.nextID++
	inv.ID = fmt.Sprintf("conv-id-%d", f.nextID)
	inv.Token = token
	f.bySlug[inv.Slug] = inv
	return nil
}

func (f *fakeInvitationRepo) GetBySlug(ctx context.Context, slug string) (*domain.Invitation, error) {
	if inv, ok := f.bySlug[slug]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) IncrementViews(ctx context.Context, id string) error {
	f.incremented = append(f.incremented, id)
	for _, inv := range f.bySlug {
		if inv.ID == id {
			inv.Views++
		}
	}
	return nil
}

func (f *fakeInvitationRepo) Update(ctx context.Context, inv *domain.Invitation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for slug, existing := range f.bySlug {
		if existing.ID == inv.ID {
			cp := *inv
			f.bySlug[slug] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, id string) error {
	for slug, existing := range f.bySlug {
		if existing.ID == id {
			delete(f.bySlug, slug)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvitationRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Invitation, error) {
	invs := []*domain.Invitation{}
	for _, inv := range f.bySlug {
		if len(invs) == limit {
			break
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

func (f *fakeInvitationRepo) Count(ctx context.Context) (int, error) {
	return len(f.bySlug), nil
}

func (f *fakeInvitationRepo) TotalViews(ctx context.Context) (int, error) {
	total := 0
	for _, inv := range f.bySlug {
		total += inv.Views
	}
	return total, nil
}

// fakeRSVPRepo implements domain.RSVPRepository for tests.
type fakeRSVPRepo struct {
	byID      map[string]*domain.RSVP
	createErr error
	nextID    int
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[string]*domain.RSVP)}
}

func (f *fakeRSVPRepo) Create(ctx context.Context, r *domain.RSVP) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	r.ID = fmt.Sprintf("rsvp-id-%d", f.nextID)
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRSVPRepo) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.RSVP, error) {
	entries := []*domain.RSVP{}
	for _, r := range f.byID {
		if r.InvitationID == invitationID {
			entries = append(entries, r)
		}
	}
	return entries, nil
}

func (f *fakeRSVPRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeGateway implements domain.PaymentGateway for tests.
type fakeGateway struct {
	payments map[string]*domain.Payment
	err      error
}

func (f *fakeGateway) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.payments[paymentID]; ok {
		return p, nil
	}
	return nil, domain.ErrGatewayFailure
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent []*domain.RedemptionEmailData
	err  error
}

func (f *fakeEmailService) SendRedemptionLink(ctx context.Context, data *domain.RedemptionEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
