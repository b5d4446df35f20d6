package auth

import (
	"context"

	"coderr/internal/domain"
)

// UserRepository lists the user store methods the auth service uses.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, username string) (string, error)
}
