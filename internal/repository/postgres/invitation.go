package postgres

import (
	"context"
	"database/sql"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, email, code, is_used, expires_at, used_at, inviter_id, invited_user_id, created_on`

func scanInvitation(row interface{ Scan(...any) error }) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	err := row.Scan(&inv.ID, &inv.Email, &inv.Code, &inv.IsUsed, &inv.ExpiresAt, &inv.UsedAt, &inv.InviterID, &inv.InvitedUserID, &inv.CreatedOn)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (id, email, code, is_used, expires_at, inviter_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	inv.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, inv.ID, inv.Email, inv.Code, inv.IsUsed, inv.ExpiresAt, inv.InviterID, inv.CreatedOn)
	return err
}

func (r *invitationRepository) GetPendingByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE LOWER(email) = LOWER($1) AND is_used = false AND expires_at > $2
	          ORDER BY created_on DESC LIMIT 1`
	return scanInvitation(r.db.QueryRowContext(ctx, query, email, now))
}

func (r *invitationRepository) GetPendingByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE LOWER(email) = LOWER($1) AND code = $2 AND is_used = false AND expires_at > $3`
	return scanInvitation(r.db.QueryRowContext(ctx, query, email, code, now))
}

func (r *invitationRepository) GetUnusedByIDAndInviter(ctx context.Context, id, inviterID string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE id = $1 AND inviter_id = $2 AND is_used = false`
	return scanInvitation(r.db.QueryRowContext(ctx, query, id, inviterID))
}

func (r *invitationRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	query := `UPDATE invitations SET expires_at = $1, reminded_at = NULL WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, expiresAt, id)
	return err
}

func (r *invitationRepository) ListByInviter(ctx context.Context, inviterID string) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE inviter_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, inviterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) StatsByInviter(ctx context.Context, inviterID string, now time.Time) (*domain.InvitationStats, error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE is_used),
	                 COUNT(*) FILTER (WHERE NOT is_used AND expires_at > $2),
	                 COUNT(*) FILTER (WHERE NOT is_used AND expires_at <= $2),
	                 COUNT(*) FILTER (WHERE created_on > $3)
	          FROM invitations WHERE inviter_id = $1`
	stats := &domain.InvitationStats{}
	weekAgo := now.Add(-7 * 24 * time.Hour)
	err := r.db.QueryRowContext(ctx, query, inviterID, now, weekAgo).Scan(
		&stats.Total, &stats.Used, &stats.Pending, &stats.Expired, &stats.LastWeek,
	)
	if err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.ConversionRate = float64(stats.Used) / float64(stats.Total) * 100
	}
	return stats, nil
}

func (r *invitationRepository) ListExpiringUnreminded(ctx context.Context, from, to time.Time) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE is_used = false AND reminded_at IS NULL AND expires_at > $1 AND expires_at <= $2`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE invitations SET reminded_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}
