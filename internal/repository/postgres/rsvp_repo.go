package postgres

import (
	"context"
	"database/sql"
	"errors"

	"convitepro/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

func (r *rsvpRepository) Create(ctx context.Context, entry *domain.RSVP) error {
	query := `
		INSERT INTO presencas (convite_id, nome, adultos, criancas, mensagem, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, entry.InvitationID, entry.Name, entry.Adults,
		entry.Children, entry.Message, entry.CreatedAt).
		Scan(&entry.ID)
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	query := `
		SELECT id, convite_id, nome, adultos, criancas, mensagem, created_at
		FROM presencas
		WHERE id = $1
	`
	entry := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&entry.ID, &entry.InvitationID, &entry.Name, &entry.Adults, &entry.Children,
			&entry.Message, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *rsvpRepository) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.RSVP, error) {
	query := `
		SELECT id, convite_id, nome, adultos, criancas, mensagem, created_at
		FROM presencas
		WHERE convite_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.RSVP{}
	for rows.Next() {
		entry := &domain.RSVP{}
		if err := rows.Scan(&entry.ID, &entry.InvitationID, &entry.Name, &entry.Adults,
			&entry.Children, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *rsvpRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM presencas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
