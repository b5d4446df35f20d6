package profile

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/pkg/storage"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"
)

const mediaFolder = "profile_pictures"

type Service struct {
	profiles ProfileRepository
	users    UserRepository
	media    MediaStore
}

func NewService(profiles ProfileRepository, users UserRepository, media MediaStore) *Service {
	return &Service{profiles: profiles, users: users, media: media}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies an owner edit. Existence is checked before ownership.
func (s *Service) Update(ctx context.Context, caller *domain.Caller, userID int64, req UpdateProfileRequest, file *multipart.FileHeader) (*domain.Profile, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.UserID != userID {
		return nil, ErrForbidden
	}

	// Email хранится в users, нормализуем так же, как при регистрации
	if req.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &e
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, errs
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, validator.Field("email", "This field may not be blank.")
		}
		taken, err := s.users.EmailTaken(ctx, *req.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, validator.Field("email", msgEmailTaken)
		}
	}

	upd := domain.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
		Tel:          req.Tel,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
		Email:        req.Email,
	}

	if file != nil {
		name, err := s.media.Save(mediaFolder, file)
		if err != nil {
			if msg, ok := storage.FieldMessage(err); ok {
				return nil, validator.Field("file", msg)
			}
			return nil, err
		}
		upd.File = &name
	}

	if err := s.profiles.Update(ctx, userID, upd); err != nil {
		if upd.File != nil {
			s.media.Remove(*upd.File)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validator.Field("email", msgEmailTaken)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.File != nil && current.File != nil && *current.File != "" {
		s.media.Remove(*current.File)
	}

	return s.Get(ctx, userID)
}

func (s *Service) ListByType(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	return s.profiles.ListByType(ctx, role)
}

// FileURL is the site-relative location of a stored profile picture.
func (s *Service) FileURL(name *string) *string {
	return s.media.URL(name)
}
