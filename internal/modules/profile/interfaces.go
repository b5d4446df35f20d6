package profile

import (
	"context"
	"mime/multipart"

	"coderr/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	ListByType(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	Update(ctx context.Context, userID int64, upd domain.ProfileUpdate) error
}

type UserRepository interface {
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type MediaStore interface {
	Save(folder string, fh *multipart.FileHeader) (string, error)
	Remove(name string)
	URL(name *string) *string
}
