package postgres

import (
	"context"
	"database/sql"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, role, invitation_level, COALESCE(invitation_path, ''), last_online, latitude, longitude, last_location_at, created_on, updated_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.InvitationLevel, &u.InvitationPath,
		&u.LastOnline, &u.Latitude, &u.Longitude, &u.LastLocationAt, &u.CreatedOn, &u.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, role, invitation_level, COALESCE(invitation_path, ''), last_online, latitude, longitude, last_location_at, created_on, updated_on
	          FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.InvitationLevel, &u.InvitationPath,
		&u.LastOnline, &u.Latitude, &u.Longitude, &u.LastLocationAt, &u.CreatedOn, &u.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error) {
	query := `SELECT id, user_id, type, name, COALESCE(avatar, ''), COALESCE(bio, '') FROM profiles WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Type, &p.Name, &p.Avatar, &p.Bio); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *userRepository) UpdateLastOnline(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET last_online = $1, updated_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *userRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error {
	query := `UPDATE users SET latitude = $1, longitude = $2, last_location_at = $3, updated_on = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, lat, lng, at, id)
	return err
}

func (r *userRepository) ListWithFreshLocation(ctx context.Context, excludeID string, since time.Time) ([]domain.User, error) {
	query := `SELECT id, email, password_hash, role, invitation_level, COALESCE(invitation_path, ''), last_online, latitude, longitude, last_location_at, created_on, updated_on
	          FROM users
	          WHERE id <> $1 AND latitude IS NOT NULL AND longitude IS NOT NULL AND last_location_at > $2`
	rows, err := r.db.QueryContext(ctx, query, excludeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.InvitationLevel, &u.InvitationPath,
			&u.LastOnline, &u.Latitude, &u.Longitude, &u.LastLocationAt, &u.CreatedOn, &u.UpdatedOn,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ClearLocationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE users SET latitude = NULL, longitude = NULL, last_location_at = NULL
	          WHERE last_location_at IS NOT NULL AND last_location_at < $1`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListNetwork matches the user ID against whole path segments only. IDs are
// UUIDs, so neither the separator nor a LIKE wildcard can occur inside one.
func (r *userRepository) ListNetwork(ctx context.Context, userID string) ([]domain.NetworkMember, error) {
	query := `SELECT u.id,
	                 COALESCE((SELECT p.name FROM profiles p WHERE p.user_id = u.id ORDER BY p.id LIMIT 1), ''),
	                 u.invitation_level, u.last_online,
	                 (SELECT COUNT(*) FROM invitations i WHERE i.inviter_id = u.id)
	          FROM users u
	          WHERE u.invitation_path = $1
	             OR u.invitation_path LIKE $1 || '>%'
	             OR u.invitation_path LIKE '%>' || $1
	             OR u.invitation_path LIKE '%>' || $1 || '>%'`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.NetworkMember
	for rows.Next() {
		var m domain.NetworkMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Level, &m.LastOnline, &m.SentInvites); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
