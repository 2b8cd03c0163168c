package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/repository"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

// CreateMember inserts the new user and their profiles and consumes the
// invitation in a single transaction. The invitation update is guarded on
// is_used = false so a concurrent redemption of the same invitation makes
// exactly one of the two transactions fail and roll back.
func (r *registrationRepository) CreateMember(ctx context.Context, u *domain.User, profiles []domain.Profile, invitationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	u.LastOnline = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, role, invitation_level, invitation_path, last_online, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.InvitationLevel, u.InvitationPath, u.LastOnline, u.CreatedOn, u.UpdatedOn,
	)
	if err != nil {
		return err
	}

	for i := range profiles {
		profiles[i].UserID = u.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, user_id, type, name, avatar, bio) VALUES ($1, $2, $3, $4, $5, $6)`,
			profiles[i].ID, profiles[i].UserID, profiles[i].Type, profiles[i].Name, profiles[i].Avatar, profiles[i].Bio,
		)
		if err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE invitations SET is_used = true, used_at = $1, invited_user_id = $2 WHERE id = $3 AND is_used = false`,
		now, u.ID, invitationID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("invitation %s already consumed", invitationID)
	}

	u.Profiles = profiles
	return tx.Commit()
}
