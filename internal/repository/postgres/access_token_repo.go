package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"convitepro/internal/domain"
)

type accessTokenRepository struct {
	DB *sql.DB
}

func NewAccessTokenRepository(db *sql.DB) domain.AccessTokenRepository {
	return &accessTokenRepository{
		DB: db,
	}
}

func (r *accessTokenRepository) Create(ctx context.Context, t *domain.AccessToken) error {
	query := `
		INSERT INTO acessos_ml (token, payment_id, comprador_email, comprador_id, usado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.Token, t.PaymentID, t.BuyerEmail, t.BuyerID, t.Used, t.CreatedAt).
		Scan(&t.ID)
	if err != nil {
		// The unique constraint on payment_id is the idempotency guard for
		// redelivered notifications.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicatePayment
		}
		return err
	}
	return nil
}

func (r *accessTokenRepository) GetByToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	query := `
		SELECT id, token, payment_id, comprador_email, comprador_id, usado, convite_id, created_at
		FROM acessos_ml
		WHERE token = $1
	`
	t := &domain.AccessToken{}
	var invitationID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, token).
		Scan(&t.ID, &t.Token, &t.PaymentID, &t.BuyerEmail, &t.BuyerID, &t.Used, &invitationID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if invitationID.Valid {
		t.InvitationID = &invitationID.String
	}
	return t, nil
}

func (r *accessTokenRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.AccessToken, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, token, payment_id, comprador_email, comprador_id, usado, convite_id, created_at
		FROM acessos_ml
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tokens := []*domain.AccessToken{}
	for rows.Next() {
		t := &domain.AccessToken{}
		var invitationID sql.NullString
		if err := rows.Scan(&t.ID, &t.Token, &t.PaymentID, &t.BuyerEmail, &t.BuyerID, &t.Used, &invitationID, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		if invitationID.Valid {
			t.InvitationID = &invitationID.String
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tokens, total, nil
}

func (r *accessTokenRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM acessos_ml`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
