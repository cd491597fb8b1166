package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"convitepro/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

const invitationColumns = `id, token, nome_evento, frase, data_evento, horario, endereco,
		link_maps, link_whatsapp, link_presentes, contato, tema, cor, visualizacoes, slug, created_at`

func scanInvitation(row interface {
	Scan(dest ...any) error
}) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	err := row.Scan(&inv.ID, &inv.Token, &inv.EventName, &inv.Phrase, &inv.EventDate, &inv.StartTime,
		&inv.Address, &inv.MapsURL, &inv.WhatsappURL, &inv.GiftListURL, &inv.Contact,
		&inv.Theme, &inv.Color, &inv.Views, &inv.Slug, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) CreateWithToken(ctx context.Context, inv *domain.Invitation, token string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Consuming the token first makes double-redemption lose the race: the
	// second transaction matches zero rows and aborts before inserting.
	res, err := tx.ExecContext(ctx,
		`UPDATE acessos_ml SET usado = true WHERE token = $1 AND usado = false`, token)
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTokenUsed
	}

	query := `
		INSERT INTO convites (token, nome_evento, frase, data_evento, horario, endereco,
			link_maps, link_whatsapp, link_presentes, contato, tema, cor, slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, token, inv.EventName, inv.Phrase, inv.EventDate, inv.StartTime,
		inv.Address, inv.MapsURL, inv.WhatsappURL, inv.GiftListURL, inv.Contact,
		inv.Theme, inv.Color, inv.Slug, inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE acessos_ml SET convite_id = $1 WHERE token = $2`, inv.ID, token); err != nil {
		return fmt.Errorf("link token to invitation: %w", err)
	}

	inv.Token = token
	return tx.Commit()
}

func (r *invitationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM convites WHERE slug = $1`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE convites SET visualizacoes = visualizacoes + 1 WHERE id = $1`, id)
	return err
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `
		UPDATE convites
		SET nome_evento = $1, frase = $2, data_evento = $3, horario = $4, endereco = $5,
			link_maps = $6, link_whatsapp = $7, link_presentes = $8, contato = $9,
			tema = $10, cor = $11
		WHERE id = $12
	`
	res, err := r.DB.ExecContext(ctx, query, inv.EventName, inv.Phrase, inv.EventDate, inv.StartTime,
		inv.Address, inv.MapsURL, inv.WhatsappURL, inv.GiftListURL, inv.Contact,
		inv.Theme, inv.Color, inv.ID)
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

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM convites WHERE id = $1`, id)
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

func (r *invitationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM convites ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := []*domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *invitationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM convites`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *invitationRepository) TotalViews(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(visualizacoes), 0) FROM convites`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
