package postgres

import (
	"database/sql"

	"vibe-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.InvitationRepository
	repository.RegistrationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
	}
}
